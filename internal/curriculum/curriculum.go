package curriculum

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// ── 大纲数据结构（加载后只读） ──

// DailyTask 一周内单日任务
type DailyTask struct {
	Day          string `json:"day"`
	Task         string `json:"task"`
	Deliverable  string `json:"deliverable"`
	ResourceLink string `json:"resource_link"`
}

// MilestoneSpec 周级作品集里程碑的要求
type MilestoneSpec struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Deliverables []string `json:"deliverables"`
}

// Week 课程大纲中的一周
type Week struct {
	WeekNumber          int             `json:"week_number"`
	Title               string          `json:"title"`
	Objective           string          `json:"objective"`
	DailyTasks          []DailyTask     `json:"daily_tasks"`
	PortfolioMilestones []MilestoneSpec `json:"portfolio_milestones,omitempty"`
	ReflectionQuestions []string        `json:"reflection_questions,omitempty"`
}

// Resource 按周归集的学习资源（派生视图）
type Resource struct {
	Day         string
	Description string
	Deliverable string
	Link        string
}

// Store 课程大纲存储
// 加载并校验静态大纲 JSON，加载成功后只读
type Store struct {
	weeks      []Week
	byWeek     map[int]*Week
	taskIndex  map[string]struct{} // "week-day"
	totalTasks int
}

// document 大纲文件的顶层结构
type document struct {
	Weeks []Week `json:"weeks"`
}

// LoadFile 从磁盘加载大纲 JSON
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取大纲文件失败: %w", err)
	}
	return Load(data)
}

// Load 解析并校验大纲文档
func Load(data []byte) (*Store, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("解析大纲 JSON 失败: %w", err)
	}
	if len(doc.Weeks) == 0 {
		return nil, fmt.Errorf("大纲不包含任何周")
	}

	s := &Store{
		byWeek:    make(map[int]*Week, len(doc.Weeks)),
		taskIndex: make(map[string]struct{}),
	}

	weeks := make([]Week, len(doc.Weeks))
	copy(weeks, doc.Weeks)
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekNumber < weeks[j].WeekNumber })
	s.weeks = weeks

	for i := range s.weeks {
		w := &s.weeks[i]
		if _, dup := s.byWeek[w.WeekNumber]; dup {
			return nil, fmt.Errorf("周编号重复: %d", w.WeekNumber)
		}
		s.byWeek[w.WeekNumber] = w

		seenDays := make(map[string]struct{}, len(w.DailyTasks))
		for _, task := range w.DailyTasks {
			if _, dup := seenDays[task.Day]; dup {
				return nil, fmt.Errorf("第 %d 周的日任务重复: %s", w.WeekNumber, task.Day)
			}
			seenDays[task.Day] = struct{}{}
			s.taskIndex[TaskKey(w.WeekNumber, task.Day)] = struct{}{}
			s.totalTasks++
		}
	}

	return s, nil
}

func validateSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("curriculum.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("加载大纲 Schema 失败: %w", err)
	}
	schema, err := compiler.Compile("curriculum.schema.json")
	if err != nil {
		return fmt.Errorf("编译大纲 Schema 失败: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("解析大纲 JSON 失败: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("大纲文档不符合 Schema: %w", err)
	}
	return nil
}

// TaskKey 任务完成集合使用的 "{week}-{day}" 键
func TaskKey(week int, day string) string {
	return fmt.Sprintf("%d-%s", week, day)
}

// HasTask 判断 (week, day) 是否存在于大纲中
func (s *Store) HasTask(week int, day string) bool {
	_, ok := s.taskIndex[TaskKey(week, day)]
	return ok
}

// Week 按周编号查找，不存在返回 nil
func (s *Store) Week(n int) *Week {
	return s.byWeek[n]
}

// Weeks 全部周，按周编号升序
func (s *Store) Weeks() []Week {
	return s.weeks
}

// TotalWeeks 总周数
func (s *Store) TotalWeeks() int {
	return len(s.weeks)
}

// TotalTasks 大纲中的日任务总数
func (s *Store) TotalTasks() int {
	return s.totalTasks
}

// TasksPerWeek 指定周的任务数，不存在的周返回 0
func (s *Store) TasksPerWeek(week int) int {
	w := s.byWeek[week]
	if w == nil {
		return 0
	}
	return len(w.DailyTasks)
}

// ResourcesByWeek 按周归集所有带资源链接的任务
func (s *Store) ResourcesByWeek() map[int][]Resource {
	out := make(map[int][]Resource)
	for _, w := range s.weeks {
		for _, task := range w.DailyTasks {
			if task.ResourceLink == "" {
				continue
			}
			out[w.WeekNumber] = append(out[w.WeekNumber], Resource{
				Day:         task.Day,
				Description: task.Task,
				Deliverable: task.Deliverable,
				Link:        task.ResourceLink,
			})
		}
	}
	return out
}
