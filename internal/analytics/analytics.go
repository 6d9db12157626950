package analytics

import (
	"math"

	"github.com/Rushant-123/ui-learnings/internal/model"
)

// 洞察分类
const (
	InsightSuccess = "success"
	InsightWarning = "warning"
	InsightInfo    = "info"
)

// WeekCompletion 单周完成度
type WeekCompletion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Insight 基于阈值的确定性学习提示
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Summary 学习数据汇总，全部由输入切片派生，不读外部状态
type Summary struct {
	WeeklyCompletion    map[int]WeekCompletion `json:"weeklyCompletion"`
	SubmissionsByType   map[string]int         `json:"submissionsByType"`
	WeeklyActivity      map[int]int            `json:"weeklyActivity"`
	AverageScore        float64                `json:"averageScore"`      // 0 表示暂无评分
	ScoreDistribution   map[int]int            `json:"scoreDistribution"` // 按 1-10 整数分桶
	Consistency         int                    `json:"consistency"`       // 整周完成率，0-100
	CompletedMilestones int                    `json:"completedMilestones"`
	Insights            []Insight              `json:"insights"`
}

// Aggregate 汇总进度、作业与里程碑数据
// 纯函数：空输入得到零值汇总加兜底提示，不会 panic
func Aggregate(progress []model.TaskProgress, assignments []model.Assignment,
	milestones []model.PortfolioMilestone, totalWeeks, tasksPerWeek int) Summary {

	s := Summary{
		WeeklyCompletion:  make(map[int]WeekCompletion),
		SubmissionsByType: make(map[string]int),
		WeeklyActivity:    make(map[int]int),
		ScoreDistribution: make(map[int]int),
	}

	// 1. 周完成度
	for _, p := range progress {
		wc, ok := s.WeeklyCompletion[p.WeekNumber]
		if !ok {
			wc = WeekCompletion{Total: tasksPerWeek}
		}
		if p.Completed {
			wc.Completed++
		}
		s.WeeklyCompletion[p.WeekNumber] = wc
	}

	// 2. 作业分布与自动反馈评分
	var scoreSum, scoreCount int
	for _, a := range assignments {
		s.SubmissionsByType[a.SubmissionType]++
		s.WeeklyActivity[a.WeekNumber]++
		for _, f := range a.Feedback {
			if f.FeedbackType != model.FeedbackAIGenerated || f.Score == nil {
				continue
			}
			scoreSum += *f.Score
			scoreCount++
			if *f.Score >= 1 && *f.Score <= 10 {
				s.ScoreDistribution[*f.Score]++
			}
		}
	}
	if scoreCount > 0 {
		s.AverageScore = math.Round(float64(scoreSum)/float64(scoreCount)*10) / 10
	}

	// 3. 连贯性：整周完成数占总周数的百分比
	completedWeeks := 0
	for _, wc := range s.WeeklyCompletion {
		if wc.Total > 0 && wc.Completed >= wc.Total {
			completedWeeks++
		}
	}
	if totalWeeks > 0 {
		s.Consistency = int(math.Round(float64(completedWeeks) / float64(totalWeeks) * 100))
	}

	// 4. 已提交里程碑数
	s.CompletedMilestones = len(milestones)

	s.Insights = generateInsights(&s, len(progress) > 0, scoreCount)
	return s
}

// generateInsights 阈值规则固定，同一输入永远得到同一组提示
// 没有任何进度记录时不给节奏告警，只给兜底提示
func generateInsights(s *Summary, hasProgress bool, scoreCount int) []Insight {
	insights := make([]Insight, 0, 3)

	if s.Consistency > 80 {
		insights = append(insights, Insight{
			Type:        InsightSuccess,
			Title:       "Consistency Champion!",
			Description: "You're maintaining excellent consistency in your learning schedule.",
		})
	} else if hasProgress && s.Consistency < 50 {
		insights = append(insights, Insight{
			Type:        InsightWarning,
			Title:       "Consider Your Pace",
			Description: "Try to maintain a more consistent learning schedule for better results.",
		})
	}

	textCount := s.SubmissionsByType[model.SubmissionText]
	visualCount := s.SubmissionsByType[model.SubmissionFile] + s.SubmissionsByType[model.SubmissionImage]
	if textCount > visualCount*2 {
		insights = append(insights, Insight{
			Type:        InsightInfo,
			Title:       "Try Visual Work",
			Description: "Consider submitting more visual assignments to build your portfolio.",
		})
	}

	if scoreCount > 0 {
		if s.AverageScore >= 8 {
			insights = append(insights, Insight{
				Type:        InsightSuccess,
				Title:       "Excellent Work!",
				Description: "Your assignments are receiving high scores. Keep up the great work!",
			})
		} else if s.AverageScore < 7 {
			insights = append(insights, Insight{
				Type:        InsightInfo,
				Title:       "Growth Opportunity",
				Description: "Review your automated feedback to identify areas for improvement.",
			})
		}
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			Type:        InsightInfo,
			Title:       "Keep Learning!",
			Description: "Continue working through the curriculum to unlock more detailed insights.",
		})
	}
	return insights
}
