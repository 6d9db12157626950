package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
)

var (
	// ErrUnknownWeek 大纲中不存在该周
	ErrUnknownWeek = errors.New("大纲中不存在该周")
	// ErrNoReflectionQuestions 该周没有反思问题，无从作答
	ErrNoReflectionQuestions = errors.New("该周没有反思问题")
	// ErrIncompleteReflections 反思问题未全部作答
	ErrIncompleteReflections = errors.New("反思问题未全部作答")
)

// SubmitReflections 把某周反思问题的答案打包成一份 reflection 类作业提交。
// 每个问题都必须有非空白答案，缺一个就拒绝，且不发起任何请求；
// 答案按问题顺序与 curriculum.Week.ReflectionQuestions 一一对应。
func (c *Client) SubmitReflections(ctx context.Context, curr *curriculum.Store, weekNumber int, answers []string) (*dto.SubmitAssignmentResponse, error) {
	week := curr.Week(weekNumber)
	if week == nil {
		return nil, ErrUnknownWeek
	}
	questions := week.ReflectionQuestions
	if len(questions) == 0 {
		return nil, ErrNoReflectionQuestions
	}
	if len(answers) != len(questions) {
		return nil, ErrIncompleteReflections
	}
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			return nil, ErrIncompleteReflections
		}
	}

	blocks := make([]string, len(questions))
	for i, q := range questions {
		blocks[i] = fmt.Sprintf("Q: %s\nA: %s\n", q, answers[i])
	}

	return c.SubmitAssignment(ctx, dto.SubmitAssignmentRequest{
		WeekNumber:     weekNumber,
		TaskDay:        "Reflections",
		Title:          fmt.Sprintf("Week %d Reflections", weekNumber),
		Description:    fmt.Sprintf("Reflection answers for %s", week.Title),
		SubmissionType: model.SubmissionReflection,
		Content:        strings.Join(blocks, "\n"),
		ExternalLinks:  []string{},
	})
}
