// Package client 是课程跟踪服务的 Go 客户端库：
// 类型化 API 客户端、本地完成集存储、进度跟踪器与面板控制器。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
)

// defaultTimeout 单次请求上限，超过视为失败而非"慢"
const defaultTimeout = 8 * time.Second

// ErrorKind 客户端错误类别
// 调用方按类别分支（如网络不可达时降级本地模式），而不是匹配错误文案
type ErrorKind int

const (
	KindUnauthorized ErrorKind = iota + 1
	KindValidation
	KindForbidden
	KindNotFound
	KindServer
	KindNetwork
	KindTimeout
)

// APIError 带类别的远端调用错误
type APIError struct {
	Kind       ErrorKind
	StatusCode int // 网络/超时错误时为 0
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return "api: " + e.Message
}

// IsKind 判断 err 是否为指定类别的 APIError
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsUnreachable 网络不可达或超时，二者都允许降级为仅本地模式
func IsUnreachable(err error) bool {
	return IsKind(err, KindNetwork) || IsKind(err, KindTimeout)
}

// Client 远端 API 客户端
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient 创建客户端，baseURL 形如 "http://localhost:3000"
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken 设置访问令牌，空串表示未登录
func (c *Client) SetToken(token string) { c.token = token }

// Token 当前访问令牌
func (c *Client) Token() string { return c.token }

// Authenticated 是否持有会话
func (c *Client) Authenticated() bool { return c.token != "" }

// ── 认证 ──

// Signup 注册，成功后自动持有返回的令牌
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	if resp.Session != nil {
		c.token = resp.Session.AccessToken
	}
	return &resp, nil
}

// Signin 登录，成功后自动持有返回的令牌
func (c *Client) Signin(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.SigninRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", req, &resp); err != nil {
		return nil, err
	}
	if resp.Session != nil {
		c.token = resp.Session.AccessToken
	}
	return &resp, nil
}

// Me 当前登录用户
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Signout 登出并清除本地令牌
// 即使远端调用失败也清除令牌，避免客户端持有已失效的会话
func (c *Client) Signout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	c.token = ""
	return err
}

// ── 进度 ──

func (c *Client) GetProgress(ctx context.Context) (*dto.ProgressListResponse, error) {
	var resp dto.ProgressListResponse
	if err := c.do(ctx, http.MethodGet, "/api/progress", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateProgress(ctx context.Context, week int, day string, completed bool) (*dto.ProgressUpdateResponse, error) {
	req := dto.UpdateProgressRequest{WeekNumber: week, TaskDay: day, Completed: completed}
	var resp dto.ProgressUpdateResponse
	if err := c.do(ctx, http.MethodPost, "/api/progress", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ── 作业 ──

// ListAssignments week 为 0、day 为空表示不过滤
func (c *Client) ListAssignments(ctx context.Context, week int, day string) ([]model.Assignment, error) {
	path := "/api/assignments"
	q := url.Values{}
	if week > 0 {
		q.Set("weekNumber", strconv.Itoa(week))
	}
	if day != "" {
		q.Set("taskDay", day)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp dto.AssignmentListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

func (c *Client) SubmitAssignment(ctx context.Context, req dto.SubmitAssignmentRequest) (*dto.SubmitAssignmentResponse, error) {
	var resp dto.SubmitAssignmentResponse
	if err := c.do(ctx, http.MethodPost, "/api/assignments", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateAssignment(ctx context.Context, req dto.UpdateAssignmentRequest) (*model.Assignment, error) {
	var resp dto.AssignmentResponse
	if err := c.do(ctx, http.MethodPut, "/api/assignments", req, &resp); err != nil {
		return nil, err
	}
	return resp.Assignment, nil
}

// ── 作品集 ──

func (c *Client) ListPortfolio(ctx context.Context) ([]model.PortfolioMilestone, error) {
	var resp dto.PortfolioListResponse
	if err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Portfolio, nil
}

func (c *Client) SubmitMilestone(ctx context.Context, req dto.SubmitMilestoneRequest) (*model.PortfolioMilestone, error) {
	var resp dto.MilestoneResponse
	if err := c.do(ctx, http.MethodPost, "/api/portfolio", req, &resp); err != nil {
		return nil, err
	}
	return resp.Milestone, nil
}

func (c *Client) UpdateMilestone(ctx context.Context, req dto.UpdateMilestoneRequest) (*model.PortfolioMilestone, error) {
	var resp dto.MilestoneResponse
	if err := c.do(ctx, http.MethodPut, "/api/portfolio", req, &resp); err != nil {
		return nil, err
	}
	return resp.Milestone, nil
}

// ── 反馈 ──

// ListFeedback assignmentID 为空时返回本人所有作业的反馈
func (c *Client) ListFeedback(ctx context.Context, assignmentID string) ([]model.AssignmentFeedback, error) {
	path := "/api/feedback"
	if assignmentID != "" {
		path += "?assignmentId=" + url.QueryEscape(assignmentID)
	}

	var resp dto.FeedbackListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Feedback, nil
}

func (c *Client) CreateFeedback(ctx context.Context, req dto.CreateFeedbackRequest) (*model.AssignmentFeedback, error) {
	var resp dto.FeedbackResponse
	if err := c.do(ctx, http.MethodPost, "/api/feedback", req, &resp); err != nil {
		return nil, err
	}
	return resp.Feedback, nil
}

func (c *Client) UpdateFeedback(ctx context.Context, req dto.UpdateFeedbackRequest) (*model.AssignmentFeedback, error) {
	var resp dto.FeedbackResponse
	if err := c.do(ctx, http.MethodPut, "/api/feedback", req, &resp); err != nil {
		return nil, err
	}
	return resp.Feedback, nil
}

// ── 上传 ──

func (c *Client) PresignUpload(ctx context.Context, fileName, fileType string, fileSize int64) (*dto.UploadResponse, error) {
	req := dto.UploadRequest{FileName: fileName, FileType: fileType, FileSize: fileSize}
	var resp dto.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/upload", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ── 传输层 ──

// do 发送请求并把响应解码到 out；out 为 nil 时丢弃响应体
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindValidation, Message: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Kind: KindValidation, Message: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return classifyStatusError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindServer, StatusCode: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}

// classifyTransportError 区分超时与网络不可达，二者都不携带 HTTP 状态
func classifyTransportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "request timed out"}
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &APIError{Kind: KindTimeout, Message: "request timed out"}
	}
	return &APIError{Kind: KindNetwork, Message: err.Error()}
}

// classifyStatusError 按 HTTP 状态映射错误类别，消息取响应体的 error 字段
func classifyStatusError(resp *http.Response) *APIError {
	message := http.StatusText(resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		message = body.Error
	}

	kind := KindServer
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusBadRequest, http.StatusConflict, http.StatusRequestEntityTooLarge:
		kind = KindValidation
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	}
	return &APIError{Kind: kind, StatusCode: resp.StatusCode, Message: message}
}
