// Package web 内嵌的页面模板与静态资源
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates 解析全部页面模板
// 每个页面用{{define "name"}}定义，名称即c.HTML中使用的视图名
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// Static 静态资源文件系统（挂载到/static）
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static目录随二进制内嵌，不会不存在
		panic(err)
	}
	return http.FS(sub)
}
