package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/service"
)

type MediaController struct {
	mediaSvc *service.MediaService
}

func NewMediaController(mediaSvc *service.MediaService) *MediaController {
	return &MediaController{
		mediaSvc: mediaSvc,
	}
}

// UploadImage 上传图片
// @Summary 上传图片
// @Description multipart 表单上传，字段名 file，单文件最大 10MB
// @Tags Media (媒体资源)
// @Accept multipart/form-data
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param file formData file true "图片文件"
// @Success 201 {object} dto.UploadResponse "上传结果"
// @Failure 400 {object} map[string]string "文件类型不支持或超限"
// @Router /api/v1/stores/{storeId}/media [post]
func (c *MediaController) UploadImage(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxUploadSize+1))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}

	url, err := c.mediaSvc.UploadImage(ctx.Request.Context(), storeID, data,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.UploadResponse{Url: url})
}

// UploadBase64 上传 Base64 图片
// @Summary 上传 Base64 图片
// @Description 富文本编辑器粘贴场景，支持 data URL 前缀
// @Tags Media (媒体资源)
// @Accept json
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param request body dto.UploadBase64Request true "Base64 数据"
// @Success 201 {object} dto.UploadResponse "上传结果"
// @Failure 400 {object} map[string]string "解码失败"
// @Router /api/v1/stores/{storeId}/media/base64 [post]
func (c *MediaController) UploadBase64(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	var req dto.UploadBase64Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	url, err := c.mediaSvc.UploadBase64(ctx.Request.Context(), storeID, req.Data)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.UploadResponse{Url: url})
}
