package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/freelance-market/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-market/internal/service"
	"github.com/ignatzorin/freelance-market/internal/storage"
)

// Разрешённые типы файлов для аватара
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет загрузкой аватаров.
type MediaHandler struct {
	users   *service.UserService
	storage *storage.AvatarStorage
}

// NewMediaHandler создаёт хэндлер.
func NewMediaHandler(users *service.UserService, storage *storage.AvatarStorage) *MediaHandler {
	return &MediaHandler{users: users, storage: storage}
}

// UploadAvatar обрабатывает POST /profile/avatar.
// Тип файла проверяется по магическим байтам, а не по расширению.
func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле file обязательно"})
		return
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не может быть пустым"})
		return
	}
	if file.Size > h.storage.MaxUploadBytes() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "размер файла превышает лимит"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неподдерживаемый формат файла, разрешены изображения"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "содержимое файла не является изображением"})
		return
	}

	expectedExt := "." + kind.Extension
	sameJpeg := (ext == ".jpg" && expectedExt == ".jpeg") || (ext == ".jpeg" && expectedExt == ".jpg")
	if ext != expectedExt && !sameJpeg {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("расширение файла (%s) не соответствует содержимому (%s)", ext, expectedExt),
		})
		return
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сбросить позицию файла"})
		return
	}

	relativePath, _, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	imagePath := filepath.ToSlash(relativePath)
	user, err := h.users.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		ProfileImage: &imagePath,
	})
	if err != nil {
		_ = h.storage.Delete(c.Request.Context(), relativePath)
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile_image": user.ProfileImage})
}
