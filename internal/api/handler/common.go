package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/api/middleware"
	"vidhub-go/internal/api/response"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Uploads multipart 文件落盘的临时目录
type Uploads struct {
	Dir string
}

func (u Uploads) dir() string {
	if u.Dir == "" {
		return os.TempDir()
	}
	return u.Dir
}

// save 把表单文件保存到临时目录，返回本地路径；未上传时返回空字符串
func (u Uploads) save(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(ext) > 10 {
		ext = ""
	}
	path := filepath.Join(u.dir(), uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// saveAll 依次保存多个表单文件，失败时清理已保存的文件并写出错误响应
func (u Uploads) saveAll(c *gin.Context, fields ...string) ([]string, bool) {
	paths := make([]string, len(fields))
	for i, field := range fields {
		path, err := u.save(c, field)
		if err != nil {
			removeTemp(paths...)
			logger.Warn("Save upload failed", zap.String("field", field), zap.Error(err))
			response.BadRequest(c, "读取上传文件失败")
			return nil, false
		}
		paths[i] = path
	}
	return paths, true
}

// removeTemp 媒体服务上传后会自行删除临时文件，这里兜底清理提前失败的请求
func removeTemp(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn("Remove temp file failed", zap.String("path", p), zap.Error(err))
		}
	}
}

// parseIDParam 解析路径中的 ID，失败时写出 400
func parseIDParam(c *gin.Context, name, message string) (int64, bool) {
	id, err := model.ParseID(c.Param(name))
	if err != nil {
		response.BadRequest(c, message)
		return 0, false
	}
	return id, true
}

func bindListQuery(c *gin.Context, q interface{}) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		response.BadRequest(c, "查询参数无效", err.Error())
		return false
	}
	return true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "请求参数无效", err.Error())
		return false
	}
	return true
}

func bindContent(c *gin.Context) (string, bool) {
	var req dto.ContentRequest
	if !bindJSON(c, &req) {
		return "", false
	}
	return req.Content, true
}

// currentUser 经过 AuthRequired 的路由一定能取到用户 ID
func currentUser(c *gin.Context) int64 {
	id, _ := middleware.GetCurrentUserID(c)
	return id
}
