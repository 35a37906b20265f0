package video

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"mango/internal/ai"
	"mango/internal/config"
	"mango/internal/model/video"
	"mango/internal/pkg/cache"
	"mango/internal/pkg/remotion"
	"mango/internal/pkg/storage"
	"mango/internal/pkg/videotools"
	videorepo "mango/internal/repository/video"
)

// GenerateInput 一次视频生成请求的入参（handler 层已完成入参校验）
type GenerateInput struct {
	Prompt       string // 视频创意提示词
	Model        string // 指定模型ID，空串用配置默认
	VariantCount int    // 变体数量，0 视为 1
	ImageDataURL string // 参考图 data URL，可为空
}

// GenerateOutput 一次视频生成请求的完整结果
// jobId / videoUrl / metadata 取首个成功变体，便于单变体调用方直接消费
type GenerateOutput struct {
	OK        bool                  `json:"ok"`
	RequestID string                `json:"requestId"`
	JobID     string                `json:"jobId,omitempty"`
	VideoURL  string                `json:"videoUrl,omitempty"`
	Metadata  *video.VideoMetadata  `json:"metadata,omitempty"`
	Variants  []video.VariantResult `json:"variants"`
	Logs      []video.StepLog       `json:"logs"`
	Error     string                `json:"error,omitempty"`
}

// VideoService 视频生成服务接口
// 定义 video 模块 service 层提供的能力
type VideoService interface {
	// GenerateVideo 提示词 → N 个风格变体 → 渲染发布的完整编排
	// 输出永不为 nil；请求级失败（简报失败或全部变体失败）时 err 非空
	GenerateVideo(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// GetRequest 查询单条历史请求
	GetRequest(ctx context.Context, id string) (*video.RenderRequest, error)

	// ListRequests 分页查询历史请求（按创建时间倒序）
	ListRequests(ctx context.Context, limit, offset int64) ([]*video.RenderRequest, int64, error)

	// ListModels 列出可用模型（优先走缓存）
	ListModels(ctx context.Context) ([]ai.ModelInfo, error)
}

// videoService 视频生成服务实现
type videoService struct {
	cfg         *config.Config
	aiClient    *ai.Client
	engine      RenderEngine
	store       storage.Storage
	cache       *cache.RedisCache
	requestRepo videorepo.RenderRequestRepository
	providerFor func(modelID string) videotools.LLMProvider // 会话提供者工厂
}

// NewVideoService 创建视频生成服务
// db / redisCache / store 均可为 nil：历史、缓存、发布按可降级能力处理
func NewVideoService(cfg *config.Config, db *mongo.Database, redisCache *cache.RedisCache, store storage.Storage) (VideoService, error) {
	aiClient, err := ai.NewClient(&cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("init AI client: %w", err)
	}

	var requestRepo videorepo.RenderRequestRepository
	if db != nil {
		requestRepo = videorepo.NewRenderRequestRepo(db)
	}

	return &videoService{
		cfg:         cfg,
		aiClient:    aiClient,
		engine:      remotion.NewClient(&cfg.Render),
		store:       store,
		cache:       redisCache,
		requestRepo: requestRepo,
		providerFor: func(modelID string) videotools.LLMProvider {
			return ai.NewSessionProvider(aiClient, modelID)
		},
	}, nil
}

// GetRequest 查询单条历史请求
func (s *videoService) GetRequest(ctx context.Context, id string) (*video.RenderRequest, error) {
	if s.requestRepo == nil {
		return nil, ErrHistoryUnavailable
	}
	return s.requestRepo.FindByID(ctx, id)
}

// ListRequests 分页查询历史请求
func (s *videoService) ListRequests(ctx context.Context, limit, offset int64) ([]*video.RenderRequest, int64, error) {
	if s.requestRepo == nil {
		return nil, 0, ErrHistoryUnavailable
	}
	return s.requestRepo.List(ctx, limit, offset)
}
