package videotools

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError 无法从模型输出中恢复出 JSON 时返回的错误
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not parseable JSON: %s", e.Reason)
}

// extractStrategy 单个 JSON 恢复策略
// 策略必须是全函数：内部不报错，恢复失败返回 ok=false
type extractStrategy func(text string) (json.RawMessage, bool)

// extractStrategies 按优先级排列的恢复策略链，第一个命中的结果生效
// 模型会不稳定地把 JSON 包在说明文字或代码块里，这里做的是尽力恢复，不是语法级解析
var extractStrategies = []extractStrategy{
	extractDirect,
	extractFencedBlocks,
	extractBraceSlice,
}

// fencedBlockPattern 匹配三反引号代码块（可带 json 语言标记）
var fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")

// ExtractJSON 从模型返回的自由文本中恢复一个 JSON 值
// 依次尝试：整体直接解析 → 按源码顺序解析每个代码块内容 → 截取首个 { 到最后一个 } 的子串
// 全部失败时返回 *ParseError；本层不做重试，失败原样抛给调用方处理
func ExtractJSON(text string) (json.RawMessage, error) {
	for _, strategy := range extractStrategies {
		if raw, ok := strategy(text); ok {
			return raw, nil
		}
	}
	return nil, &ParseError{Reason: "no JSON value found"}
}

// extractDirect 直接解析去除首尾空白后的全文
func extractDirect(text string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

// extractFencedBlocks 按出现顺序解析每个代码块的内容，返回第一个能解析的
func extractFencedBlocks(text string) (json.RawMessage, bool) {
	matches := fencedBlockPattern.FindAllStringSubmatch(text, -1)
	for _, m := range matches {
		inner := strings.TrimSpace(m[1])
		if inner != "" && json.Valid([]byte(inner)) {
			return json.RawMessage(inner), true
		}
	}
	return nil, false
}

// extractBraceSlice 兜底策略：截取首个 { 到最后一个 } 之间的子串尝试解析
func extractBraceSlice(text string) (json.RawMessage, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}
