package adminapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/internal/webserver"
)

func registerUploadRoutes() {
	webserver.AdminPOST("/upload", uploadMedia)
	webserver.AdminGET("/uploads", listUploads)
}

// uploadMedia pushes a binary to the media service and then issues the
// dependent write. The dependent update is only ever sent after the upload
// resolves; a failed upload never leaves a broken reference behind.
func uploadMedia(c echo.Context) error {
	gw := webserver.GetGateway(c)
	if !gw.CanWrite() {
		return webserver.Fail(c, http.StatusServiceUnavailable, "READ_ONLY", "Backend unavailable, uploads are disabled", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing file", err.Error())
	}
	field := c.FormValue("field")
	if field != "heroMediaUrl" && field != "image" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown upload field", field)
	}
	productID := c.FormValue("product_id")

	src, err := fileHeader.Open()
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to open file", err.Error())
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read file", err.Error())
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	url, err := gw.UploadMedia(data, mediaType, field, productID)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "UPLOAD_FAILED", "Media upload failed", err.Error())
	}

	// The durable URL is captured; only now may the dependent write go out.
	switch {
	case field == "heroMediaUrl":
		if err := gw.UpdateSiteConfig(c.Request().Context(), domain.SiteConfigPatch{HeroMediaURL: &url}); err != nil {
			return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Uploaded, but failed to store hero media", err.Error())
		}
	case productID != "":
		sess := webserver.GetSession(c)
		if sess.DraftID() == productID {
			// An open draft absorbs the URL; it reaches the store on save.
			sess.UpdateDraft(domain.ProductPatch{Image: &url})
		} else {
			if err := gw.UpdateProduct(c.Request().Context(), productID, domain.ProductPatch{Image: &url}); err != nil {
				return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Uploaded, but failed to store product image", err.Error())
			}
		}
	default:
		// A new-product draft has no id yet; the caller stores the URL in
		// the draft itself.
		webserver.GetSession(c).UpdateDraft(domain.ProductPatch{Image: &url})
	}

	return webserver.OK(c, map[string]interface{}{"url": url, "field": field})
}

// listUploads reports the in-flight upload keys so the UI can show one
// progress indicator per (field, entity) pair.
func listUploads(c echo.Context) error {
	return webserver.OK(c, webserver.GetGateway(c).UploadsInFlight())
}
