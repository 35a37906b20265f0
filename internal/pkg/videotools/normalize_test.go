package videotools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"mango/internal/model/video"
)

func TestNormalizeSpec(t *testing.T) {
	Convey("NormalizeSpec 能把任意规格钳制到安全范围", t, func() {
		Convey("空规格全部取缺省值", func() {
			spec := NormalizeSpec(video.VideoSpec{})
			So(spec.FPS, ShouldEqual, DefaultFPS)
			So(spec.DurationInFrames, ShouldEqual, DefaultDurationFrames)
			So(spec.Width, ShouldEqual, DefaultWidth)
			So(spec.Height, ShouldEqual, DefaultHeight)
			So(spec.Title, ShouldEqual, DefaultTitle)
			So(spec.InputProps, ShouldNotBeNil)
		})

		Convey("超上限的数值被钳到上限", func() {
			spec := NormalizeSpec(video.VideoSpec{FPS: 240, DurationInFrames: 99999, Width: 8000, Height: 5000})
			So(spec.FPS, ShouldEqual, MaxFPS)
			So(spec.DurationInFrames, ShouldEqual, MaxDurationFrames)
			So(spec.Width, ShouldEqual, MaxWidth)
			So(spec.Height, ShouldEqual, MaxHeight)
		})

		Convey("低于下限的数值被钳到下限", func() {
			spec := NormalizeSpec(video.VideoSpec{FPS: 1, Width: 10, Height: -100, DurationInFrames: 1200})
			So(spec.FPS, ShouldEqual, MinFPS)
			So(spec.Width, ShouldEqual, MinWidth)
			So(spec.Height, ShouldEqual, MinHeight)
		})

		Convey("时长下限还要满足 6 秒内容底线", func() {
			// clamp 后 45 帧，但 30fps 要求至少 180 帧
			spec := NormalizeSpec(video.VideoSpec{FPS: 30, DurationInFrames: 10})
			So(spec.DurationInFrames, ShouldEqual, 180)

			// 60fps 时底线提高到 360 帧
			spec = NormalizeSpec(video.VideoSpec{FPS: 60, DurationInFrames: 100})
			So(spec.DurationInFrames, ShouldEqual, 360)
		})

		Convey("合法值原样保留", func() {
			in := video.VideoSpec{
				Title:            "Neon Story",
				FPS:              24,
				DurationInFrames: 240,
				Width:            1280,
				Height:           720,
				InputProps:       map[string]any{"text": "hi"},
				ComponentCode:    "export default function A() {}",
			}
			out := NormalizeSpec(in)
			So(out, ShouldResemble, in)
		})

		Convey("component_code 原样透传，不做校验", func() {
			spec := NormalizeSpec(video.VideoSpec{ComponentCode: "garbage, not even code"})
			So(spec.ComponentCode, ShouldEqual, "garbage, not even code")
		})

		Convey("归一化是幂等的", func() {
			inputs := []video.VideoSpec{
				{},
				{FPS: -5, DurationInFrames: -1, Width: -1, Height: -1},
				{FPS: 240, DurationInFrames: 99999, Width: 9999, Height: 9999},
				{FPS: 60, DurationInFrames: 46},
				{FPS: 12, DurationInFrames: 50, Width: 320, Height: 240},
				{Title: "ok", FPS: 30, DurationInFrames: 300, Width: 1920, Height: 1080},
			}
			for _, in := range inputs {
				once := NormalizeSpec(in)
				twice := NormalizeSpec(once)
				So(twice, ShouldResemble, once)
			}
		})

		Convey("归一化结果总在允许范围内", func() {
			inputs := []video.VideoSpec{
				{FPS: -100, DurationInFrames: -100, Width: -100, Height: -100},
				{FPS: 1000, DurationInFrames: 1, Width: 1, Height: 1000000},
				{FPS: 59, DurationInFrames: 44},
			}
			for _, in := range inputs {
				out := NormalizeSpec(in)
				So(out.FPS, ShouldBeBetweenOrEqual, MinFPS, MaxFPS)
				So(out.DurationInFrames, ShouldBeBetweenOrEqual, MinDurationFrames, MaxDurationFrames)
				So(out.DurationInFrames, ShouldBeGreaterThanOrEqualTo, out.FPS*MinDurationSeconds)
				So(out.Width, ShouldBeBetweenOrEqual, MinWidth, MaxWidth)
				So(out.Height, ShouldBeBetweenOrEqual, MinHeight, MaxHeight)
			}
		})
	})
}
