package dto

// ── 上传模块 DTO ──

// UploadRequest 预签名上传申请
type UploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required,min=1"`
}

// UploadResponse 预签名上传响应
type UploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FilePath  string `json:"filePath"`
	PublicURL string `json:"publicUrl"`
}
