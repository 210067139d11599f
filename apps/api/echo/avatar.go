package echoapi

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/letscatchup/core"
)

const (
	avatarNamespace = "avatars"
	avatarMaxBytes  = 200 << 10 // 200KB
)

var (
	errAvatarMissing  = echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	errAvatarNotImage = echo.NewHTTPError(http.StatusBadRequest, "avatar must be an image")
	errAvatarTooBig   = echo.NewHTTPError(http.StatusRequestEntityTooLarge, "avatar may not exceed 200KB")
)

type avatarApi struct {
	files core.FileStorage
}

func registerAvatarAPI(g *echo.Group, files core.FileStorage) {
	api := avatarApi{files: files}
	g.POST("/avatars", api.upload)
}

type avatarResponse struct {
	URL string `json:"url"`
}

func (api *avatarApi) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile("avatar")
	if err != nil {
		return errAvatarMissing
	}
	if fh.Size > avatarMaxBytes {
		return errAvatarTooBig
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return errAvatarNotImage
	}

	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening avatar upload")
	}
	defer src.Close()

	// the size check above trusts the multipart header; the limit caps what
	// is actually written
	body := io.LimitReader(src, avatarMaxBytes)

	url, err := api.files.Save(avatarNamespace, avatarObjectName(fh.Filename), body)
	if err != nil {
		return errors.Wrap(err, "saving avatar")
	}
	return ctx.JSON(http.StatusCreated, avatarResponse{URL: url})
}

// avatarObjectName builds a collision-free storage name while keeping the
// upload's extension for content-type sniffing by static file servers.
func avatarObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%d-%s%s", time.Now().UTC().UnixNano(), suffix, ext)
}
