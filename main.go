package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/layout"
	"github.com/ByLCY/ledger/purchase"
	"github.com/ByLCY/ledger/renderer"
	canvasrenderer "github.com/ByLCY/ledger/renderer/canvas"
	"github.com/ByLCY/ledger/report"
)

type options struct {
	layoutPath string
	dataPath   string
	outputPath string
	debugPath  string
	budget     string
	company    string
	logoPath   string
	fontPath   string
	symbology  string
	limit      int
}

func main() {
	var opts options
	flag.StringVar(&opts.layoutPath, "layout", "examples/purchase.layout", "布局文件路径")
	flag.StringVar(&opts.dataPath, "data", "examples/orders.json", "采购单 JSON 数据")
	flag.StringVar(&opts.outputPath, "out", "output/orders.pdf", "PDF 输出路径")
	flag.StringVar(&opts.debugPath, "debug", "", "文档树调试 JSON 输出路径")
	flag.StringVar(&opts.budget, "budget", "", "使用的预算名称（默认取布局文件中第一个）")
	flag.StringVar(&opts.company, "company", "", "抬头公司名称")
	flag.StringVar(&opts.logoPath, "logo", "", "抬头 logo 图片")
	flag.StringVar(&opts.fontPath, "font", "", "正文字体 TTF/OTF 文件")
	flag.StringVar(&opts.symbology, "barcode", "code128", "条码码制：code128、qr、code39、ean")
	flag.IntVar(&opts.limit, "limit", 4, "并发生成的单据数量上限")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), opts, logger); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", opts.outputPath)
}

// run 串联布局配置、数据加载、分页组装与渲染。
func run(ctx context.Context, opts options, logger *slog.Logger) error {
	cfg, err := loadLayout(opts.layoutPath)
	if err != nil {
		return err
	}
	budget := cfg.Default()
	if opts.budget != "" {
		if budget, err = cfg.Budget(opts.budget); err != nil {
			return err
		}
	}

	symbology, ok := document.ParseSymbology(opts.symbology)
	if !ok {
		return fmt.Errorf("不支持的条码码制 %q", opts.symbology)
	}
	composerOpts := []purchase.ComposerOption{purchase.WithSymbology(symbology)}
	if opts.company != "" {
		composerOpts = append(composerOpts, purchase.WithCompany(opts.company))
	}
	if opts.logoPath != "" {
		logo, err := os.ReadFile(opts.logoPath)
		if err != nil {
			return fmt.Errorf("读取 logo 失败: %w", err)
		}
		composerOpts = append(composerOpts, purchase.WithLogo(logo))
	}

	file, err := os.Open(opts.dataPath)
	if err != nil {
		return fmt.Errorf("无法打开数据文件 %s: %w", opts.dataPath, err)
	}
	defer file.Close()
	orders, err := purchase.Load(file)
	if err != nil {
		return fmt.Errorf("解析采购单失败: %w", err)
	}

	// 纸张尺寸以预算为准，其余页面设置来自布局文件
	settings := cfg.Settings
	settings.Width, settings.Height = budget.PageWidth, budget.PageHeight
	jobs := purchase.Jobs(orders, budget, composerOpts...)
	for i := range jobs {
		jobs[i].Options = append(jobs[i].Options, document.WithSettings(settings))
	}

	logger.Info("generating",
		slog.String("layout", cfg.Name),
		slog.String("budget", budget.Name),
		slog.Int("orders", len(orders)),
	)
	g := report.New(report.WithLogger(logger))
	doc, err := report.GenerateBatch(ctx, g, cfg.Name, jobs, opts.limit)
	if err != nil {
		return fmt.Errorf("组装文档失败: %w", err)
	}
	if len(orders) > 1 {
		doc.Meta.Title = cfg.Meta.Title
	}
	if doc.Meta.Author == "" {
		doc.Meta.Author = cfg.Meta.Author
	}
	doc.Meta.Keywords = cfg.Meta.Keywords

	if opts.debugPath != "" {
		if err := writeDebug(doc, opts.debugPath); err != nil {
			return err
		}
	}

	r, err := newRenderer(settings.FontName, opts.fontPath)
	if err != nil {
		return err
	}
	if counter, ok := r.(interface {
		CountPages(*document.Document) (int, error)
	}); ok {
		if pages, err := counter.CountPages(doc); err == nil {
			logger.Info("laid out", slog.Int("pages", pages))
		}
	}

	pdfBytes, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(opts.outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(opts.outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func loadLayout(path string) (*layout.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开布局文件 %s: %w", path, err)
	}
	defer file.Close()
	cfg, err := layout.LoadConfig(file)
	if err != nil {
		return nil, fmt.Errorf("解析布局文件失败: %w", err)
	}
	return cfg, nil
}

func newRenderer(fontName, fontPath string) (renderer.Renderer, error) {
	if fontPath == "" {
		return canvasrenderer.NewRenderer(), nil
	}
	return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Fonts: map[string]canvasrenderer.Resource{fontName: {Path: fontPath}},
	})
}

func writeDebug(doc *document.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := document.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
