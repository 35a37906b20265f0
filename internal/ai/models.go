package ai

import "context"

// ModelInfo 可用模型的描述
type ModelInfo struct {
	ID       string `json:"id"`       // 模型ID，传给 StartSession
	Name     string `json:"name"`     // 展示名
	Provider string `json:"provider"` // 所属提供方
	Default  bool   `json:"default"`  // 是否当前配置的默认模型
}

// builtinCatalog 各提供方的常用模型清单
// 各家没有统一的在线 list 接口，这里维护静态清单，配置的默认模型始终补进结果
var builtinCatalog = map[string][]ModelInfo{
	"openai": {
		{ID: "gpt-4o", Name: "GPT-4o"},
		{ID: "gpt-4o-mini", Name: "GPT-4o mini"},
		{ID: "gpt-4.1", Name: "GPT-4.1"},
		{ID: "o4-mini", Name: "o4-mini"},
	},
	"azure": {
		{ID: "gpt-4o", Name: "GPT-4o (Azure)"},
		{ID: "gpt-4o-mini", Name: "GPT-4o mini (Azure)"},
	},
	"ark": {
		{ID: "doubao-seed-1-6-flash-250615", Name: "Doubao Seed 1.6 Flash"},
		{ID: "doubao-seed-1-6-250615", Name: "Doubao Seed 1.6"},
		{ID: "deepseek-v3-250324", Name: "DeepSeek V3"},
	},
	"ark-sdk": {
		{ID: "doubao-seed-1-6-flash-250615", Name: "Doubao Seed 1.6 Flash"},
		{ID: "doubao-seed-1-6-250615", Name: "Doubao Seed 1.6"},
		{ID: "deepseek-v3-250324", Name: "DeepSeek V3"},
	},
}

// ListModels 返回当前提供方下可用的模型清单
// 配置的默认模型排在首位并带 default 标记
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	provider := c.cfg.Provider
	if provider == "" {
		provider = "openai"
	}

	catalog := builtinCatalog[provider]
	models := make([]ModelInfo, 0, len(catalog)+1)

	if c.cfg.Model != "" {
		models = append(models, ModelInfo{
			ID:       c.cfg.Model,
			Name:     c.cfg.Model,
			Provider: provider,
			Default:  true,
		})
	}

	for _, m := range catalog {
		if m.ID == c.cfg.Model {
			continue
		}
		m.Provider = provider
		models = append(models, m)
	}

	return models, nil
}
