package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// CaptureImage 截取 A4 画布为 PNG。
// 视口锁定 794x1123 CSS 像素并放大两倍采样，与既有下载产物保持一致。
func CaptureImage(page *rod.Page) ([]byte, error) {
	override := &proto.EmulationSetDeviceMetricsOverride{
		Width:             PageWidthPx,
		Height:            PageHeightPx,
		DeviceScaleFactor: 2,
		Mobile:            false,
	}
	if err := override.Call(page); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	element, err := page.Timeout(5 * time.Second).Element("#a4-container")
	if err == nil {
		if data, shotErr := element.Screenshot(proto.PageCaptureScreenshotFormatPng, 0); shotErr == nil {
			return data, nil
		}
	}

	// 画布定位失败时退回整页截图。
	req := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	}
	data, err := page.Screenshot(true, req)
	if err != nil {
		return nil, fmt.Errorf("page screenshot: %w", err)
	}
	return data, nil
}

// ExportPDF 将页面打印为无边距的 A4 PDF。
func ExportPDF(page *rod.Page) ([]byte, error) {
	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return nil, fmt.Errorf("set emulated media to print: %w", err)
	}

	params := &proto.PagePrintToPDF{
		PrintBackground:   true,
		PaperWidth:        float64Ptr(8.27),
		PaperHeight:       float64Ptr(11.69),
		MarginTop:         float64Ptr(0),
		MarginBottom:      float64Ptr(0),
		MarginLeft:        float64Ptr(0),
		MarginRight:       float64Ptr(0),
		PreferCSSPageSize: true,
	}
	reader, err := page.PDF(params)
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}

func float64Ptr(value float64) *float64 {
	return &value
}
