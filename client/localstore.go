package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore 设备本地的键值存储，承载完成集与主题偏好
// 序列化格式不带版本号，格式变更即破坏旧数据
type LocalStore struct {
	path string
}

// NewLocalStore path 为存储文件路径，目录不存在时会在首次写入创建
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

// localData 文件顶层结构
type localData struct {
	CompletedTasks []string `json:"completed_tasks"`
	Theme          string   `json:"theme,omitempty"`
}

// load 文件不存在视为空数据
func (s *LocalStore) load() (*localData, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &localData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local store: %w", err)
	}

	var data localData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse local store: %w", err)
	}
	return &data, nil
}

func (s *LocalStore) save(data *localData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create local store dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}

// Completions 读取完成集，键形如 "1-Monday"
func (s *LocalStore) Completions() (map[string]bool, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(data.CompletedTasks))
	for _, key := range data.CompletedTasks {
		set[key] = true
	}
	return set, nil
}

// SaveCompletions 整集覆盖写入，保留已存的主题偏好
func (s *LocalStore) SaveCompletions(set map[string]bool) error {
	data, err := s.load()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(set))
	for key, done := range set {
		if done {
			keys = append(keys, key)
		}
	}
	data.CompletedTasks = keys
	return s.save(data)
}

// Theme 读取主题偏好，未设置时返回空串
func (s *LocalStore) Theme() (string, error) {
	data, err := s.load()
	if err != nil {
		return "", err
	}
	return data.Theme, nil
}

// SetTheme 写入主题偏好，保留完成集
func (s *LocalStore) SetTheme(theme string) error {
	data, err := s.load()
	if err != nil {
		return err
	}
	data.Theme = theme
	return s.save(data)
}
