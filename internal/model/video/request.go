package video

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RenderRequest 一次生成请求的完整落库记录
// 用途：请求结束后整体写入，供历史列表与诊断查询；不做中间状态更新
type RenderRequest struct {
	ID            string `bson:"id" json:"id"`                               // 请求ID（UUID）
	Prompt        string `bson:"prompt" json:"prompt"`                       // 用户提示词
	Model         string `bson:"model,omitempty" json:"model,omitempty"`     // 指定的模型ID（可选）
	VariantCount  int    `bson:"variant_count" json:"variantCount"`          // 请求的变体数量
	ImageAttached bool   `bson:"image_attached" json:"imageAttached"`        // 是否附带参考图

	OK bool `bson:"ok" json:"ok"` // 至少一个变体成功即为 true

	// 首个成功变体的便捷字段
	JobID    string `bson:"job_id,omitempty" json:"jobId,omitempty"`
	VideoURL string `bson:"video_url,omitempty" json:"videoUrl,omitempty"`

	Error    string          `bson:"error,omitempty" json:"error,omitempty"` // 请求级错误（全部失败时）
	Variants []VariantResult `bson:"variants" json:"variants"`               // 按简报顺序的全部变体结果
	Logs     []StepLog       `bson:"logs" json:"logs"`                       // 阶段日志

	ElapsedMS   int64     `bson:"elapsed_ms" json:"elapsedMs"` // 总耗时（毫秒）
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	CompletedAt time.Time `bson:"completed_at" json:"completedAt"`
}

// Collection 返回集合名称
func (r *RenderRequest) Collection() string {
	return "render_requests"
}

// EnsureIndexes 创建和维护索引
func (r *RenderRequest) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(r.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
		{
			Keys:    bson.D{{Key: "ok", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_ok_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
