package client

import (
	"context"

	"github.com/Rushant-123/ui-learnings/internal/analytics"
	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/model"
)

// LoadAnalytics 拉取进度、作业与里程碑三类数据并汇总为分析摘要。
// 单类数据拉取失败时按空集合降级，保证分析页总能渲染；
// 鉴权失败（KindUnauthorized）例外，直接返回错误交给调用方重新登录。
// 可包一层闭包作为 PanelAnalytics 的 LoadFunc。
func (c *Client) LoadAnalytics(ctx context.Context, curr *curriculum.Store) (analytics.Summary, error) {
	var progress []model.TaskProgress
	if resp, err := c.GetProgress(ctx); err != nil {
		if IsKind(err, KindUnauthorized) {
			return analytics.Summary{}, err
		}
	} else {
		progress = resp.Progress
	}

	assignments, err := c.ListAssignments(ctx, 0, "")
	if err != nil {
		if IsKind(err, KindUnauthorized) {
			return analytics.Summary{}, err
		}
		assignments = nil
	}

	milestones, err := c.ListPortfolio(ctx)
	if err != nil {
		if IsKind(err, KindUnauthorized) {
			return analytics.Summary{}, err
		}
		milestones = nil
	}

	totalWeeks := curr.TotalWeeks()
	tasksPerWeek := 0
	if totalWeeks > 0 {
		tasksPerWeek = curr.TotalTasks() / totalWeeks
	}

	return analytics.Aggregate(progress, assignments, milestones, totalWeeks, tasksPerWeek), nil
}
