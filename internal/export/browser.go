// Package export 通过无头 Chromium 把渲染好的简历页面固化为 PNG 或 PDF。
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 @ 96 DPI，与渲染模板中的画布尺寸一致。
const (
	PageWidthPx  = 794
	PageHeightPx = 1123
)

// RenderPage 启动无头浏览器并载入给定的 HTML 文档。
// 返回的 cleanup 负责关闭页面、浏览器与临时目录，成功路径上由调用方执行。
func RenderPage(logger *slog.Logger, html string, timeout time.Duration) (_ *rod.Page, cleanup func(), err error) {
	cleanup = func() {}

	launch := launcher.New().
		Headless(true).
		NoSandbox(true)
	defer func() {
		if err != nil {
			launch.Cleanup()
		}
	}()

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, cleanup, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Timeout(timeout)
	if err := browser.Connect(); err != nil {
		return nil, cleanup, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		launch.Cleanup()
		return nil, func() {}, fmt.Errorf("open blank page: %w", err)
	}
	cleanup = func() {
		if page != nil {
			_ = page.Close()
		}
		_ = browser.Close()
		launch.Cleanup()
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, cleanup, fmt.Errorf("set document content: %w", err)
	}

	logger.Info("Worker: Waiting for render signal (#pdf-render-ready)...")
	if _, err := page.Timeout(30 * time.Second).Element("#pdf-render-ready"); err != nil {
		return nil, cleanup, fmt.Errorf("wait render signal: %w", err)
	}

	// 等待字体就绪，避免回退字体度量导致排版差异。
	if _, evalErr := page.Timeout(5 * time.Second).Eval(`() => {
	  if (document && document.fonts && document.fonts.ready) {
	    return Promise.race([
	      document.fonts.ready.then(() => true),
	      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
	    ]);
	  }
	  return true;
	}`); evalErr != nil {
		logger.Warn("Worker: document.fonts.ready wait failed, continue", slog.Any("error", evalErr))
	}

	page.MustWaitIdle()
	return page, cleanup, nil
}
