package videotools

import (
	"fmt"
	"regexp"
	"strings"
)

// nonAlnumPattern 连续的非字母数字字符段
var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)

// StyleSlug 从风格名派生文件名安全的 slug
// 规则：小写、非字母数字连续段折叠为单个连字符、去除首尾连字符；
// 结果为空（比如纯中文风格名）时回退到固定占位符
func StyleSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonAlnumPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "variant"
	}
	return slug
}

// DedupeStyleNames 批次内风格名去重
// 大小写不敏感判重；撞名时以首次出现的拼写为基名追加 " (2)" " (3)" 后缀；
// 追加后缀后若仍与模型原样产出的 "X (2)" 之类撞名，继续递增直到唯一
func DedupeStyleNames(names []string) []string {
	type group struct {
		base  string // 首次出现的拼写
		count int
	}
	groups := make(map[string]*group, len(names))
	taken := make(map[string]bool, len(names))

	out := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		g, ok := groups[key]
		if !ok {
			g = &group{base: name}
			groups[key] = g
		}
		g.count++

		candidate := name
		if g.count > 1 {
			candidate = fmt.Sprintf("%s (%d)", g.base, g.count)
		}
		for taken[strings.ToLower(candidate)] {
			g.count++
			candidate = fmt.Sprintf("%s (%d)", g.base, g.count)
		}

		taken[strings.ToLower(candidate)] = true
		out = append(out, candidate)
	}
	return out
}
