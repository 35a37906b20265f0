package videotools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeLLMProvider 返回固定内容或固定错误的测试替身
type fakeLLMProvider struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeLLMProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// funcLLMProvider 按提示词内容定制返回的测试替身
type funcLLMProvider struct {
	fn func(prompt string) (string, error)
}

func (f *funcLLMProvider) Generate(_ context.Context, prompt string) (string, error) {
	return f.fn(prompt)
}

func briefsJSON(names ...string) string {
	items := make([]string, 0, len(names))
	for _, n := range names {
		items = append(items, fmt.Sprintf(`{"styleName":%q,"styleBrief":"A rich direction for %s with palette, motion and pacing."}`, n, n))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestBriefGenerator_Generate(t *testing.T) {
	Convey("BriefGenerator.Generate 能产出恰好 N 个结构合格的简报", t, func() {
		ctx := context.Background()

		Convey("四个合格风格返回四个简报，variantId 按位置分配", func() {
			provider := &fakeLLMProvider{response: briefsJSON("Bold", "Soft", "Retro", "Minimal")}
			briefs, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 4, false)
			So(err, ShouldBeNil)
			So(briefs, ShouldHaveLength, 4)
			So(briefs[0].VariantID, ShouldEqual, "style-1")
			So(briefs[1].VariantID, ShouldEqual, "style-2")
			So(briefs[2].VariantID, ShouldEqual, "style-3")
			So(briefs[3].VariantID, ShouldEqual, "style-4")
			So(briefs[0].StyleName, ShouldEqual, "Bold")
			So(provider.calls, ShouldEqual, 1)
		})

		Convey("重名风格被确定性去重", func() {
			provider := &fakeLLMProvider{response: briefsJSON("Bold", "bold", "Bold", "Soft")}
			briefs, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 4, false)
			So(err, ShouldBeNil)
			So(briefs[0].StyleName, ShouldEqual, "Bold")
			So(briefs[1].StyleName, ShouldEqual, "Bold (2)")
			So(briefs[2].StyleName, ShouldEqual, "Bold (3)")
			So(briefs[3].StyleName, ShouldEqual, "Soft")
		})

		Convey("接受 {\"styles\": [...]} 包装形态", func() {
			provider := &fakeLLMProvider{response: `{"styles":` + briefsJSON("Bold") + `}`}
			briefs, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 1, false)
			So(err, ShouldBeNil)
			So(briefs, ShouldHaveLength, 1)
		})

		Convey("接受包在代码块里的输出", func() {
			provider := &fakeLLMProvider{response: "```json\n" + briefsJSON("Bold") + "\n```"}
			briefs, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 1, false)
			So(err, ShouldBeNil)
			So(briefs, ShouldHaveLength, 1)
		})

		Convey("数量不符判整批失败", func() {
			provider := &fakeLLMProvider{response: briefsJSON("Bold", "Soft", "Retro")}
			_, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 4, false)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "expected 4")
			So(err.Error(), ShouldContainSubstring, "3 styles")
		})

		Convey("任何一个元素缺字段都判整批失败", func() {
			provider := &fakeLLMProvider{response: `[{"styleName":"Bold","styleBrief":"ok direction"},{"styleName":"","styleBrief":"x"}]`}
			_, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 2, false)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "style 2")
		})

		Convey("模型服务报错原样向上传递", func() {
			provider := &fakeLLMProvider{err: errors.New("model timeout")}
			_, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 4, false)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "model timeout")
		})

		Convey("输出不是 JSON 时返回解析错误", func() {
			provider := &fakeLLMProvider{response: "I cannot do that."}
			_, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 4, false)
			So(err, ShouldNotBeNil)

			var parseErr *ParseError
			So(errors.As(err, &parseErr), ShouldBeTrue)
		})

		Convey("附图时提示词带上参考图要求", func() {
			provider := &fakeLLMProvider{response: briefsJSON("Bold")}
			_, err := NewBriefGenerator(provider).Generate(ctx, "a rocket launch", 1, true)
			So(err, ShouldBeNil)
			So(provider.lastPrompt, ShouldContainSubstring, "Reference image")
		})

		Convey("空提示词直接拒绝", func() {
			provider := &fakeLLMProvider{response: briefsJSON("Bold")}
			_, err := NewBriefGenerator(provider).Generate(ctx, "   ", 1, false)
			So(err, ShouldNotBeNil)
			So(provider.calls, ShouldEqual, 0)
		})
	})
}
