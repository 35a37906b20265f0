package video

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mango/internal/model/video"
)

// RenderRequestRepository 渲染请求仓库接口（供 service 层依赖）
type RenderRequestRepository interface {
	Create(ctx context.Context, req *video.RenderRequest) error
	FindByID(ctx context.Context, id string) (*video.RenderRequest, error)
	List(ctx context.Context, limit, offset int64) ([]*video.RenderRequest, int64, error)
}

// RenderRequestRepo 渲染请求仓库
type RenderRequestRepo struct {
	coll *mongo.Collection
}

// NewRenderRequestRepo 创建渲染请求仓库
func NewRenderRequestRepo(db *mongo.Database) *RenderRequestRepo {
	var r video.RenderRequest
	return &RenderRequestRepo{coll: db.Collection(r.Collection())}
}

// Create 写入一条完成的请求记录（请求结束后整体落库，不做中间更新）
func (r *RenderRequestRepo) Create(ctx context.Context, req *video.RenderRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, req)
	return err
}

// FindByID 根据请求ID查询
func (r *RenderRequestRepo) FindByID(ctx context.Context, id string) (*video.RenderRequest, error) {
	var req video.RenderRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// List 按创建时间倒序分页
// 列表视图省略阶段日志和变体明细，完整记录走详情查询
func (r *RenderRequestRepo) List(ctx context.Context, limit, offset int64) ([]*video.RenderRequest, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset).
		SetProjection(bson.M{"logs": 0, "variants": 0})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var reqs []*video.RenderRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}
