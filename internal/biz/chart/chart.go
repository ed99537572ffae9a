package chart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var chromeCache string

const OutputDir = "./bench_charts"

// 采样上限，超过按等间距抽稀
const sampleMax = 2000

// IGenerator 图表生成接口
type IGenerator interface {
	Generate(pts []Point, game string, theoretical float64, saveLocal bool) (*GenerateResult, error)
}

// Point 收敛曲线数据点
type Point struct {
	X float64 // 累计局数
	Y float64 // 经验胜率 (0-1)
}

// GenerateResult 生成结果
type GenerateResult struct {
	HTMLContent string // HTML 内容
	FilePath    string // 文件路径（saveLocal=false 时为空）
}

// Generator 胜率收敛图生成器
type Generator struct {
	outputDir string
}

// NewGenerator 创建图表生成器，dir 为空用默认输出目录
func NewGenerator(dir string) IGenerator {
	if dir == "" {
		dir = OutputDir
	}
	return &Generator{outputDir: dir}
}

// Generate 生成单玩法的胜率收敛图
// saveLocal: 是否保存本地文件（HTML/PNG）
func (g *Generator) Generate(pts []Point, game string, theoretical float64, saveLocal bool) (*GenerateResult, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("no data")
	}
	pts = Sample(pts)

	x, y := make([]float64, len(pts)), make([]float64, len(pts))
	xMax := 0.0
	for i, p := range pts {
		x[i], y[i] = p.X, p.Y
		if p.X > xMax {
			xMax = p.X
		}
	}
	final := pts[len(pts)-1].Y

	xJ, _ := jsoniter.Marshal(x)
	yJ, _ := jsoniter.Marshal(y)

	html := fmt.Sprintf(chartTpl,
		game,
		game, theoretical*100, final*100,
		string(xJ), string(yJ), xMax, theoretical,
		game,
	)

	result := &GenerateResult{
		HTMLContent: html,
	}

	if !saveLocal {
		return result, nil
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, err
	}

	path := filepath.Join(g.outputDir, fmt.Sprintf("%s.html", game))
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return nil, err
	}

	renderPNG(path)
	result.FilePath = path
	return result, nil
}

// Sample 等间距抽稀到 sampleMax 个点，首尾保留
func Sample(pts []Point) []Point {
	n := len(pts)
	if n <= sampleMax {
		return pts
	}
	step := (n - 1) / (sampleMax - 1)
	if step < 1 {
		step = 1
	}
	out := make([]Point, 0, sampleMax)
	for i := 0; i < n && len(out) < sampleMax-1; i += step {
		out = append(out, pts[i])
	}
	out = append(out, pts[n-1])
	return out
}

func toPng(html string) string {
	return strings.TrimSuffix(html, ".html") + ".png"
}

func renderPNG(htmlPath string) {
	chrome := findChrome()
	if chrome == "" {
		return
	}
	absH, _ := filepath.Abs(htmlPath)
	absP, _ := filepath.Abs(toPng(htmlPath))
	args := []string{
		"--headless=new", "--disable-gpu", "--hide-scrollbars",
		"--window-size=1720,920", "--force-device-scale-factor=2",
		"--run-all-compositor-stages-before-draw", "--virtual-time-budget=8000",
		"--disable-web-security", "--no-sandbox",
		"--screenshot=" + absP, "file://" + absH,
	}
	if exec.Command(chrome, args...).Run() != nil {
		args[0] = "--headless"
		_ = exec.Command(chrome, args...).Run()
	}
}

func findChrome() string {
	if chromeCache != "" {
		return chromeCache
	}
	for _, p := range []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	} {
		if _, err := os.Stat(p); err == nil {
			chromeCache = p
			return p
		}
	}
	for _, name := range []string{"google-chrome", "chromium"} {
		if out, _ := exec.Command("which", name).Output(); len(out) > 0 {
			chromeCache = strings.TrimSpace(string(out))
			return chromeCache
		}
	}
	return ""
}

const chartTpl = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>胜率收敛 - %s</title>
<script src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
<style>body{font-family:'Microsoft YaHei';margin:0;padding:20px;background:#f5f5f5}.container{background:#fff;padding:20px;border-radius:8px;box-shadow:0 2px 4px rgba(0,0,0,.1)}</style>
</head>
<body>
<div class="container"><h1>玩法: %s, 理论胜率: %.2f%%, 收敛值: %.2f%%</h1><div id="chart"></div></div>
<script>
var xData=%s,yData=%s,xMax=%f,theory=%f;
var trace1={x:xData,y:yData,mode:'lines',name:'经验胜率',line:{color:'#F00',width:2,shape:'spline'},hovertemplate:'局数: %%{x:.0f}<br>胜率: %%{y:.2%%}<extra></extra>'};
var trace2={x:[0,xMax],y:[theory,theory],mode:'lines',name:'理论胜率',line:{color:'blue',dash:'dashdot'}};
var last=yData[yData.length-1];
var annotations=[{x:xData[xData.length-1],y:last,text:'<b>'+(last*100).toFixed(2)+'%%</b>',showarrow:true,ax:0,ay:-45,bgcolor:'rgba(255,255,255,.7)'}];
var layout={title:'玩法: %s 胜率收敛曲线',annotations:annotations,
  xaxis:{title:'累计局数',showgrid:true,automargin:true,zeroline:false},
  yaxis:{title:'胜率',tickformat:'.0%%',range:[0,1],showgrid:true},
  font:{size:14},plot_bgcolor:'#E8F8FF',height:800,width:1600,hovermode:'closest',
  legend:{x:0.99,y:0.99,xanchor:'right'}};
Plotly.newPlot('chart',[trace1,trace2],layout,{displayModeBar:false});
</script>
</body>
</html>`
