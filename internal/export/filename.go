package export

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ImageFileName 根据姓名生成下载文件名：resume-<slug>.png。
// 空白连跑折叠成单个连字符，姓名为空时退回 resume-download.png。
func ImageFileName(fullName string) string {
	slug := strings.ToLower(whitespaceRun.ReplaceAllString(fullName, "-"))
	if slug == "" {
		slug = "download"
	}
	return "resume-" + slug + ".png"
}

// PDFFileName 生成 PDF 下载文件名，规则与图片一致。
func PDFFileName(fullName string) string {
	return strings.TrimSuffix(ImageFileName(fullName), ".png") + ".pdf"
}
