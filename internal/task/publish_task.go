package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"storebuilder_v1_202608/internal/repository"
)

// ==================== PublishTask 定时发布任务 ====================

// PublishTask 页面定时发布任务
// 扫描 published_at 已到期但尚未发布的页面，将其置为已发布
type PublishTask struct {
	pageRepo repository.PageRepository
	cron     *cron.Cron

	batchSize int
}

// NewPublishTask 创建定时发布任务
func NewPublishTask(pageRepo repository.PageRepository) *PublishTask {
	return &PublishTask{
		pageRepo:  pageRepo,
		cron:      cron.New(cron.WithSeconds()),
		batchSize: 100,
	}
}

// Start 启动定时任务，每分钟扫描一次
func (t *PublishTask) Start() {
	_, err := t.cron.AddFunc("0 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.publishDuePages(ctx)
	})
	if err != nil {
		log.Printf("[PublishTask] 定时任务启动失败: %v", err)
		return
	}

	t.cron.Start()
	log.Println("[PublishTask] 定时发布任务已启动")
}

// Stop 停止定时任务
func (t *PublishTask) Stop() {
	t.cron.Stop()
	log.Println("[PublishTask] 定时发布任务已停止")
}

// RunNow 手动触发一次扫描
func (t *PublishTask) RunNow(ctx context.Context) int {
	return t.publishDuePages(ctx)
}

// publishDuePages 发布所有已到期的页面，返回发布数量
// 单页失败只记日志不中断，下一轮扫描会重试
func (t *PublishTask) publishDuePages(ctx context.Context) int {
	pages, err := t.pageRepo.FindDuePublish(ctx, time.Now(), t.batchSize)
	if err != nil {
		log.Printf("[PublishTask] 查询待发布页面失败: %v", err)
		return 0
	}
	if len(pages) == 0 {
		return 0
	}

	published := 0
	for i := range pages {
		page := &pages[i]
		err := t.pageRepo.UpdateFields(ctx, page.ID, map[string]interface{}{
			"is_published": true,
		})
		if err != nil {
			log.Printf("[PublishTask] 页面 %d (%s) 发布失败: %v", page.ID, page.Slug, err)
			continue
		}
		published++
		log.Printf("[PublishTask] 页面 %d (%s) 已定时发布", page.ID, page.Slug)
	}
	return published
}
