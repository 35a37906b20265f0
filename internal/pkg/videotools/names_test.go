package videotools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStyleSlug(t *testing.T) {
	Convey("StyleSlug 能生成文件名安全的 slug", t, func() {
		Convey("普通英文名转小写连字符", func() {
			So(StyleSlug("Neon Dreams"), ShouldEqual, "neon-dreams")
		})

		Convey("连续符号折叠为单个连字符", func() {
			So(StyleSlug("Bold!!  & Brash"), ShouldEqual, "bold-brash")
		})

		Convey("首尾连字符被去除", func() {
			So(StyleSlug("  --Retro Wave--  "), ShouldEqual, "retro-wave")
		})

		Convey("数字保留", func() {
			So(StyleSlug("80s Synth"), ShouldEqual, "80s-synth")
		})

		Convey("纯符号回退到占位符", func() {
			So(StyleSlug("!!!"), ShouldEqual, "variant")
		})

		Convey("纯中文风格名回退到占位符", func() {
			So(StyleSlug("霓虹之夜"), ShouldEqual, "variant")
		})

		Convey("空字符串回退到占位符", func() {
			So(StyleSlug(""), ShouldEqual, "variant")
		})
	})
}

func TestDedupeStyleNames(t *testing.T) {
	Convey("DedupeStyleNames 能确定性地去重风格名", t, func() {
		Convey("无冲突时原样保留", func() {
			names := DedupeStyleNames([]string{"Bold", "Soft", "Retro"})
			So(names, ShouldResemble, []string{"Bold", "Soft", "Retro"})
		})

		Convey("大小写不敏感判重，以首次出现的拼写为基名", func() {
			names := DedupeStyleNames([]string{"Bold", "bold", "Bold"})
			So(names, ShouldResemble, []string{"Bold", "Bold (2)", "Bold (3)"})
		})

		Convey("与模型原样产出的后缀名撞车时继续递增", func() {
			names := DedupeStyleNames([]string{"X", "X (2)", "x"})
			So(names, ShouldResemble, []string{"X", "X (2)", "X (3)"})
		})

		Convey("互不相同的大小写变体各自保留首个", func() {
			names := DedupeStyleNames([]string{"Neon", "NEON", "Glow"})
			So(names, ShouldResemble, []string{"Neon", "Neon (2)", "Glow"})
		})

		Convey("空列表返回空", func() {
			So(DedupeStyleNames(nil), ShouldBeEmpty)
		})
	})
}
