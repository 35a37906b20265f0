package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"mango/internal/model/video"
)

// EnsureIndexes 创建所有模型的索引
// 这是一个统一的入口，用于在应用启动时创建所有模型的索引
// 模型实现 Model 接口后在这里注册即可
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&video.RenderRequest{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
