package rendering

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/lucamadonia/dpp-backend/internal/domain/label"
)

// HTMLBuilder turns a resolved design document into the self-contained HTML
// page handed to the PDF renderer. All barcode and QR artwork is inlined as
// data URIs so the page renders without network access.
type HTMLBuilder struct {
	logger *zap.Logger
	// PictogramBasePath is prepended to builtin pictogram ids
	PictogramBasePath string
}

// NewHTMLBuilder creates a new HTMLBuilder
func NewHTMLBuilder(logger *zap.Logger) *HTMLBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLBuilder{
		logger:            logger,
		PictogramBasePath: "/assets/pictograms",
	}
}

// Build renders the document to a complete HTML page. The document is
// expected to be resolved already; unresolved field elements render their
// empty value.
func (b *HTMLBuilder) Build(doc *label.DesignDocument) (string, error) {
	if doc == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "design document is nil", nil)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	b.writePageCSS(&sb, doc)
	sb.WriteString("</style>\n</head>\n<body>\n<div class=\"label-page\">\n")

	for _, section := range doc.OrderedSections() {
		if !section.Visible {
			continue
		}
		b.writeSection(&sb, doc, section)
	}

	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String(), nil
}

func (b *HTMLBuilder) writePageCSS(sb *strings.Builder, doc *label.DesignDocument) {
	fmt.Fprintf(sb, "@page { size: %.2fpt %.2fpt; margin: 0; }\n", doc.PageWidth, doc.PageHeight)
	fmt.Fprintf(sb, "body { margin: 0; font-family: %s; font-size: %.1fpt; color: %s; background: %s; }\n",
		doc.FontFamily, doc.FontSize, doc.TextColor, doc.BackgroundColor)
	fmt.Fprintf(sb, ".label-page { width: %.2fpt; height: %.2fpt; padding: %.2fpt; box-sizing: border-box; overflow: hidden; }\n",
		doc.PageWidth, doc.PageHeight, doc.PageMargin)
	sb.WriteString(".section { width: 100%; }\n")
	sb.WriteString(".element { margin: 1pt 0; }\n")
	sb.WriteString(".field-inline { display: flex; gap: 3pt; }\n")
	sb.WriteString(".field-label { font-weight: 600; }\n")
	sb.WriteString(".badge { display: inline-block; text-align: center; margin-right: 3pt; }\n")
	sb.WriteString(".icon-text { display: flex; align-items: center; gap: 4pt; }\n")
	sb.WriteString(".material-codes { display: flex; gap: 4pt; flex-wrap: wrap; }\n")
	sb.WriteString(".material-code { border: 0.5pt solid currentColor; padding: 1pt 3pt; border-radius: 2pt; }\n")
}

func (b *HTMLBuilder) writeSection(sb *strings.Builder, doc *label.DesignDocument, section label.Section) {
	style := fmt.Sprintf("padding-top:%.1fpt;padding-bottom:%.1fpt;", section.PaddingTop, section.PaddingBottom)
	if section.ShowBorder {
		style += fmt.Sprintf("border-top:0.5pt solid %s;", section.BorderColor)
	}
	fmt.Fprintf(sb, "<div class=\"section\" data-section=\"%s\" style=\"%s\">\n", section.ID, style)

	for _, el := range doc.ElementsInSection(section.ID) {
		b.writeElement(sb, el)
	}

	sb.WriteString("</div>\n")
}

func (b *HTMLBuilder) writeElement(sb *strings.Builder, el label.Element) {
	switch e := el.(type) {
	case *label.TextElement:
		b.writeText(sb, e)
	case *label.FieldValueElement:
		b.writeFieldValue(sb, e)
	case *label.QRCodeElement:
		b.writeQRCode(sb, e)
	case *label.PictogramElement:
		b.writePictogram(sb, e)
	case *label.ComplianceBadgeElement:
		b.writeBadge(sb, e)
	case *label.ImageElement:
		fmt.Fprintf(sb, "<img class=\"element\" src=\"%s\" style=\"width:%.1fpt;height:%.1fpt;object-fit:%s;\">\n",
			html.EscapeString(e.URL), e.Width, e.Height, html.EscapeString(e.Fit))
	case *label.DividerElement:
		fmt.Fprintf(sb, "<hr style=\"border:none;border-top:%.1fpt solid %s;margin:%.1fpt 0;\">\n",
			e.Thickness, e.Color, e.MarginY)
	case *label.SpacerElement:
		fmt.Fprintf(sb, "<div style=\"height:%.1fpt;\"></div>\n", e.Height)
	case *label.MaterialCodeElement:
		b.writeMaterialCodes(sb, e)
	case *label.BarcodeElement:
		b.writeBarcode(sb, e)
	case *label.IconTextElement:
		b.writeIconText(sb, e)
	case *label.PackageCounterElement:
		b.writePackageCounter(sb, e)
	}
}

func (b *HTMLBuilder) writeText(sb *strings.Builder, e *label.TextElement) {
	content := e.Content
	if e.Uppercase {
		content = strings.ToUpper(content)
	}
	style := fmt.Sprintf("font-size:%.1fpt;font-weight:%s;color:%s;text-align:%s;",
		e.FontSize, e.FontWeight, e.Color, e.Align)
	if e.Italic {
		style += "font-style:italic;"
	}
	fmt.Fprintf(sb, "<div class=\"element\" style=\"%s\">%s</div>\n", style, html.EscapeString(content))
}

func (b *HTMLBuilder) writeFieldValue(sb *strings.Builder, e *label.FieldValueElement) {
	style := fmt.Sprintf("font-size:%.1fpt;font-weight:%s;color:%s;", e.FontSize, e.FontWeight, e.Color)

	layoutClass := "field-inline"
	if e.Layout == label.LayoutStacked {
		layoutClass = ""
	}
	fmt.Fprintf(sb, "<div class=\"element %s\" style=\"%s\">", layoutClass, style)
	if e.ShowLabel && e.LabelText != "" {
		fmt.Fprintf(sb, "<span class=\"field-label\">%s</span>", html.EscapeString(e.LabelText))
		if e.Layout == label.LayoutStacked {
			sb.WriteString("<br>")
		}
	}
	fmt.Fprintf(sb, "<span>%s</span></div>\n", html.EscapeString(e.Value))
}

func (b *HTMLBuilder) writeQRCode(sb *strings.Builder, e *label.QRCodeElement) {
	sb.WriteString("<div class=\"element\" style=\"text-align:center;\">")

	if e.URL != "" {
		data, err := qrcode.Encode(e.URL, qrcode.Medium, 256)
		if err != nil {
			b.logger.Warn("QR encoding failed", zap.Error(err))
		} else {
			fmt.Fprintf(sb, "<img src=\"data:image/png;base64,%s\" style=\"width:%.1fpt;height:%.1fpt;\">",
				base64.StdEncoding.EncodeToString(data), e.Size, e.Size)
		}
	}

	if e.ShowLabel && e.LabelText != "" {
		fmt.Fprintf(sb, "<div style=\"font-size:6pt;\">%s</div>", html.EscapeString(e.LabelText))
	}
	if e.ShowURL && e.URL != "" {
		fmt.Fprintf(sb, "<div style=\"font-size:5pt;\">%s</div>", html.EscapeString(e.URL))
	}
	sb.WriteString("</div>\n")
}

func (b *HTMLBuilder) writePictogram(sb *strings.Builder, e *label.PictogramElement) {
	src := e.Pictogram
	if e.Source == label.PictogramBuiltin {
		src = b.PictogramBasePath + "/" + e.Pictogram + ".svg"
	}
	sb.WriteString("<div class=\"element badge\">")
	fmt.Fprintf(sb, "<img src=\"%s\" style=\"width:%.1fpt;height:%.1fpt;\">", html.EscapeString(src), e.Size, e.Size)
	if e.Label != "" {
		fmt.Fprintf(sb, "<div style=\"font-size:5pt;\">%s</div>", html.EscapeString(e.Label))
	}
	sb.WriteString("</div>\n")
}

func (b *HTMLBuilder) writeBadge(sb *strings.Builder, e *label.ComplianceBadgeElement) {
	style := fmt.Sprintf("font-size:%.1fpt;width:%.1fpt;line-height:%.1fpt;color:%s;",
		e.Size*0.5, e.Size, e.Size, e.Color)
	if e.Style == label.BadgeFilled {
		style += fmt.Sprintf("background:%s;", e.BackgroundColor)
	} else {
		style += fmt.Sprintf("border:0.75pt solid %s;", e.Color)
	}
	fmt.Fprintf(sb, "<span class=\"badge\" style=\"%s\">%s</span>\n", style, html.EscapeString(e.Symbol))
}

func (b *HTMLBuilder) writeMaterialCodes(sb *strings.Builder, e *label.MaterialCodeElement) {
	fmt.Fprintf(sb, "<div class=\"element material-codes\" style=\"font-size:%.1fpt;color:%s;\">", e.FontSize, e.Color)
	for _, code := range e.Codes {
		fmt.Fprintf(sb, "<span class=\"material-code\">%s</span>", html.EscapeString(code))
	}
	sb.WriteString("</div>\n")
}

func (b *HTMLBuilder) writeBarcode(sb *strings.Builder, e *label.BarcodeElement) {
	if e.Value == "" {
		return
	}

	var (
		code barcode.Barcode
		err  error
	)
	switch strings.ToLower(e.Symbology) {
	case "ean13", "ean8", "ean":
		code, err = ean.Encode(e.Value)
	default:
		code, err = code128.Encode(e.Value)
	}
	if err != nil {
		b.logger.Warn("barcode encoding failed",
			zap.String("symbology", e.Symbology), zap.Error(err))
		return
	}

	scaled, err := barcode.Scale(code, 300, 80)
	if err != nil {
		b.logger.Warn("barcode scaling failed", zap.Error(err))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		b.logger.Warn("barcode PNG encoding failed", zap.Error(err))
		return
	}

	sb.WriteString("<div class=\"element\" style=\"text-align:center;\">")
	fmt.Fprintf(sb, "<img src=\"data:image/png;base64,%s\" style=\"height:%.1fpt;\">",
		base64.StdEncoding.EncodeToString(buf.Bytes()), e.Height)
	if e.ShowText {
		fmt.Fprintf(sb, "<div style=\"font-size:6pt;letter-spacing:1pt;\">%s</div>", html.EscapeString(e.Value))
	}
	sb.WriteString("</div>\n")
}

func (b *HTMLBuilder) writeIconText(sb *strings.Builder, e *label.IconTextElement) {
	fmt.Fprintf(sb, "<div class=\"element icon-text\" style=\"font-size:%.1fpt;color:%s;\">", e.FontSize, e.Color)
	fmt.Fprintf(sb, "<img src=\"%s\" style=\"width:%.1fpt;height:%.1fpt;\">",
		html.EscapeString(b.PictogramBasePath+"/"+e.Icon+".svg"), e.IconSize, e.IconSize)
	fmt.Fprintf(sb, "<span>%s</span></div>\n", html.EscapeString(e.Text))
}

func (b *HTMLBuilder) writePackageCounter(sb *strings.Builder, e *label.PackageCounterElement) {
	style := fmt.Sprintf("display:inline-block;font-size:%.1fpt;background:%s;border:0.5pt solid %s;border-radius:%.1fpt;padding:%.1fpt;",
		e.FontSize, e.BackgroundColor, e.BorderColor, e.BorderRadius, e.Padding)
	fmt.Fprintf(sb, "<div class=\"element\"><span style=\"%s\">%s</span></div>\n",
		style, html.EscapeString(e.Format))
}
