package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidhub-go/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	return c, w
}

func TestOK_Envelope(t *testing.T) {
	c, w := newContext()
	OK(c, "获取成功", gin.H{"id": 1})

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["statusCode"] != float64(200) || body["success"] != true || body["message"] != "获取成功" {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["data"].(map[string]interface{}); !ok {
		t.Errorf("data = %v", body["data"])
	}
}

func TestError_MapsKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input", apperr.InvalidInput("参数错误").WithDetails("title required"), http.StatusBadRequest, "参数错误"},
		{"unauthorized", apperr.Unauthorized("无权操作"), http.StatusUnauthorized, "无权操作"},
		{"not found", apperr.NotFound("视频不存在"), http.StatusNotFound, "视频不存在"},
		{"conflict", apperr.Conflict("已存在"), http.StatusConflict, "已存在"},
		{"upload failed", apperr.UploadFailed("上传失败", errors.New("s3 down")), http.StatusInternalServerError, "上传失败"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "服务器内部错误"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			Error(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Success || body.StatusCode != tt.wantStatus || body.Message != tt.wantMsg || body.Errors == nil {
				t.Errorf("body = %+v", body)
			}
		})
	}
}
