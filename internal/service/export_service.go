package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/config"
	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
	ErrExportNoStartDate  = errors.New("未配置课程起始日期")
)

// dayOffsets 工作日在一周内的偏移，第 1 周周一为起点
var dayOffsets = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 进度报表导出为 Excel (.xlsx)：按周一行，完成度 + 作业数 + 里程碑状态
//   - 课程日历导出为 iCalendar (.ics)：每个日任务一条全天事件，
//     日期由配置的第 1 周周一推算
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportProgress 导出用户学习进度报表为 Excel
	ExportProgress(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportCalendar 导出课程大纲为 iCalendar
	ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	curr   *curriculum.Store
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, curr *curriculum.Store, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, curr: curr, logger: logger}
}

func (s *exportService) ExportProgress(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	// 1. 查询完成记录、作业、里程碑
	records, err := s.repo.Progress.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询进度失败", zap.Error(err))
		return nil, "", err
	}
	assignments, err := s.repo.Assignment.ListByUser(ctx, userID, &repository.AssignmentFilters{})
	if err != nil {
		s.logger.Error("查询作业失败", zap.Error(err))
		return nil, "", err
	}
	milestones, err := s.repo.Portfolio.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询里程碑失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 按周建立索引
	completedByWeek := make(map[int]int)
	for _, r := range records {
		if r.Completed && s.curr.HasTask(r.WeekNumber, r.TaskDay) {
			completedByWeek[r.WeekNumber]++
		}
	}
	assignmentsByWeek := make(map[int]int)
	for _, a := range assignments {
		assignmentsByWeek[a.WeekNumber]++
	}
	milestoneByWeek := make(map[int]*model.PortfolioMilestone)
	for i := range milestones {
		milestoneByWeek[milestones[i].WeekNumber] = &milestones[i]
	}

	// 3. 生成 Excel，每周一行
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Progress"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 36)
	f.SetColWidth(sheetName, "C", "E", 14)
	f.SetColWidth(sheetName, "F", "F", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Week", "Title", "Completed", "Progress", "Assignments", "Milestone"}
	for i, h := range headers {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellRef, h)
		f.SetCellStyle(sheetName, cellRef, cellRef, headerStyle)
	}

	row := 2
	totalCompleted := 0
	for _, w := range s.curr.Weeks() {
		completed := completedByWeek[w.WeekNumber]
		totalCompleted += completed
		total := len(w.DailyTasks)

		pct := 0
		if total > 0 {
			pct = completed * 100 / total
		}
		milestoneCell := "-"
		if m := milestoneByWeek[w.WeekNumber]; m != nil {
			milestoneCell = fmt.Sprintf("%s (%s)", m.MilestoneTitle, m.Status)
		}

		values := []interface{}{
			w.WeekNumber,
			w.Title,
			fmt.Sprintf("%d/%d", completed, total),
			fmt.Sprintf("%d%%", pct),
			assignmentsByWeek[w.WeekNumber],
			milestoneCell,
		}
		for i, v := range values {
			cellRef, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cellRef, v)
		}
		row++
	}

	// 汇总行
	overall := 0
	if s.curr.TotalTasks() > 0 {
		overall = totalCompleted * 100 / s.curr.TotalTasks()
	}
	cellRef, _ := excelize.CoordinatesToCellName(1, row)
	f.SetCellValue(sheetName, cellRef, "Total")
	cellRef, _ = excelize.CoordinatesToCellName(3, row)
	f.SetCellValue(sheetName, cellRef, fmt.Sprintf("%d/%d", totalCompleted, s.curr.TotalTasks()))
	cellRef, _ = excelize.CoordinatesToCellName(4, row)
	f.SetCellValue(sheetName, cellRef, fmt.Sprintf("%d%%", overall))

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("progress_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

func (s *exportService) ExportCalendar(_ context.Context) (*bytes.Buffer, string, error) {
	// 1. 起始日期：第 1 周周一
	if s.cfg.Curriculum.StartDate == "" {
		return nil, "", ErrExportNoStartDate
	}
	start, err := time.Parse("2006-01-02", s.cfg.Curriculum.StartDate)
	if err != nil {
		return nil, "", fmt.Errorf("课程起始日期格式无效: %w", err)
	}

	// 2. 每个日任务一条全天事件
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//curriculum-tracker//EN")

	now := time.Now()
	for _, w := range s.curr.Weeks() {
		for _, task := range w.DailyTasks {
			offset, ok := dayOffsets[task.Day]
			if !ok {
				continue // Reflections 等非工作日条目不进日历
			}
			date := start.AddDate(0, 0, (w.WeekNumber-1)*7+offset)

			event := cal.AddEvent(fmt.Sprintf("week%d-%s@curriculum-tracker", w.WeekNumber, strings.ToLower(task.Day)))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetAllDayStartAt(date)
			event.SetAllDayEndAt(date.AddDate(0, 0, 1))
			event.SetSummary(fmt.Sprintf("Week %d %s: %s", w.WeekNumber, task.Day, task.Task))
			desc := task.Deliverable
			if task.ResourceLink != "" {
				desc += "\n" + task.ResourceLink
			}
			event.SetDescription(desc)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "curriculum.ics", nil
}
