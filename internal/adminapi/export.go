package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/maisonaurum/aurum/internal/webserver"
)

func registerExportRoutes() {
	webserver.AdminGET("/export/products", exportProducts)
}

type productExportRow struct {
	ID        string  `csv:"id"`
	Name      string  `csv:"name"`
	Category  string  `csv:"category"`
	Price     float64 `csv:"price"`
	Materials string  `csv:"materials"`
	IsNew     bool    `csv:"is_new"`
	Image     string  `csv:"image"`
}

// exportProducts streams the current catalog snapshot as a CSV download.
func exportProducts(c echo.Context) error {
	products := webserver.GetProjection(c).Products()

	rows := make([]productExportRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productExportRow{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Materials: strings.Join(p.Materials, "; "),
			IsNew:     p.IsNew,
			Image:     p.Image,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to build export", err.Error())
	}

	filename := fmt.Sprintf("catalog-%s.csv", time.Now().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(out))
}
