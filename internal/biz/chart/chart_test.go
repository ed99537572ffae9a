package chart

import (
	"strings"
	"testing"
)

func TestGenerator(t *testing.T) {
	pts := []Point{
		{X: 100, Y: 0.55},
		{X: 200, Y: 0.60},
		{X: 300, Y: 0.61},
	}

	g := NewGenerator("")
	res, err := g.Generate(pts, "slots", 0.6111, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.FilePath != "" {
		t.Error("saveLocal=false 不应写文件")
	}
	if !strings.Contains(res.HTMLContent, "slots") {
		t.Error("图表应包含玩法名")
	}
	if !strings.Contains(res.HTMLContent, "Plotly.newPlot") {
		t.Error("图表应包含 plotly 绘图调用")
	}

	if _, err := g.Generate(nil, "slots", 0.6111, false); err == nil {
		t.Error("空数据应报错")
	}
}

func TestSample(t *testing.T) {
	small := []Point{{X: 1, Y: 0.5}, {X: 2, Y: 0.6}}
	if got := Sample(small); len(got) != len(small) {
		t.Errorf("小数据集不应被抽稀: %d -> %d", len(small), len(got))
	}

	large := make([]Point, 10000)
	for i := range large {
		large[i] = Point{X: float64(i), Y: float64(i%100) / 1000.0}
	}
	sampled := Sample(large)
	if len(sampled) > sampleMax {
		t.Errorf("抽稀后不应超过%d，实际: %d", sampleMax, len(sampled))
	}
	if sampled[len(sampled)-1].X != large[len(large)-1].X {
		t.Error("末点应保留")
	}

	t.Logf("抽稀: %d -> %d", len(large), len(sampled))
}
