// Package qrcode 把网关返回的二维码串渲染为内联 PNG
package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

// DataURIPrefix PNG data URI 前缀
const DataURIPrefix = "data:image/png;base64,"

// 每个模块 10 像素；库默认保留 4 个模块的静区
const pixelsPerModule = 10

// ErrRenderFailure 内容为空或超出二维码容量
var ErrRenderFailure = errors.New("qr code render failed")

// PNG 以 L 级纠错渲染二维码，版本自动选择
func PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrRenderFailure)
	}
	code, err := goqrcode.New(content, goqrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailure, err)
	}
	png, err := code.PNG(-pixelsPerModule)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailure, err)
	}
	return png, nil
}

// DataURI 渲染并编码为 data:image/png;base64,...
func DataURI(content string) (string, error) {
	png, err := PNG(content)
	if err != nil {
		return "", err
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
