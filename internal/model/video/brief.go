package video

// StyleBrief 单个风格的创意简报
// 用途：由风格简报生成阶段产出，作为后续规格生成与渲染的创意方向
// variant_id 按模型输出顺序分配（style-1 起），同一批次内不重复、跨批次不复用
type StyleBrief struct {
	VariantID  string `bson:"variant_id" json:"variantId"`   // 位置派生的稳定标识（style-1, style-2, ...）
	StyleName  string `bson:"style_name" json:"styleName"`   // 风格名称（批次内大小写不敏感唯一）
	StyleBrief string `bson:"style_brief" json:"styleBrief"` // 创意方向描述文本
}
