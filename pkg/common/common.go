package common

import (
	"os"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
)

// NewID returns a store-assigned opaque identifier. Documents never carry
// client-generated ids; every persisted entity gets one of these on create.
func NewID() string {
	idNodeOnce.Do(func() {
		node, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		idNode = node
	})
	return idNode.Generate().String()
}

// EnvString reads an environment variable with a default.
func EnvString(name, defval string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return defval
	}
	return v
}

// EnvInt reads an integer environment variable with a default.
func EnvInt(name string, defval int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return defval
	}
	return cast.ToInt(v)
}

// EnvBool reads a boolean environment variable with a default.
func EnvBool(name string, defval bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return defval
	}
	return cast.ToBool(v)
}
