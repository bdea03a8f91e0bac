package dom

import (
	"golang.org/x/net/html/atom"
)

// Interface names the builtin element interface an element is created with.
type Interface string

const (
	HTMLElementInterface        Interface = "HTMLElement"
	HTMLUnknownElementInterface Interface = "HTMLUnknownElement"
)

var elementInterfaces = map[Interface][]string{
	HTMLElementInterface:        {"abbr", "address", "article", "aside", "b", "bdi", "bdo", "cite", "code", "dd", "dfn", "dt", "em", "figcaption", "figure", "footer", "header", "i", "kbd", "main", "mark", "nav", "noscript", "rp", "rt", "ruby", "s", "samp", "section", "small", "strong", "sub", "summary", "sup", "u", "var", "wbr"},
	"HTMLAnchorElement":         {"a"},
	"HTMLAppletElement":         {"applet"},
	"HTMLAreaElement":           {"area"},
	"HTMLAttachmentElement":     {"attachment"},
	"HTMLAudioElement":          {"audio"},
	"HTMLBRElement":             {"br"},
	"HTMLBaseElement":           {"base"},
	"HTMLBodyElement":           {"body"},
	"HTMLButtonElement":         {"button"},
	"HTMLCanvasElement":         {"canvas"},
	"HTMLContentElement":        {"content"},
	"HTMLDListElement":          {"dl"},
	"HTMLDataElement":           {"data"},
	"HTMLDataListElement":       {"datalist"},
	"HTMLDetailsElement":        {"details"},
	"HTMLDialogElement":         {"dialog"},
	"HTMLDirectoryElement":      {"dir"},
	"HTMLDivElement":            {"div"},
	"HTMLEmbedElement":          {"embed"},
	"HTMLFieldSetElement":       {"fieldset"},
	"HTMLFontElement":           {"font"},
	"HTMLFormElement":           {"form"},
	"HTMLFrameElement":          {"frame"},
	"HTMLFrameSetElement":       {"frameset"},
	"HTMLHRElement":             {"hr"},
	"HTMLHeadElement":           {"head"},
	"HTMLHeadingElement":        {"h1", "h2", "h3", "h4", "h5", "h6"},
	"HTMLHtmlElement":           {"html"},
	"HTMLIFrameElement":         {"iframe"},
	"HTMLImageElement":          {"img"},
	"HTMLInputElement":          {"input"},
	"HTMLKeygenElement":         {"keygen"},
	"HTMLLIElement":             {"li"},
	"HTMLLabelElement":          {"label"},
	"HTMLLegendElement":         {"legend"},
	"HTMLLinkElement":           {"link"},
	"HTMLMapElement":            {"map"},
	"HTMLMarqueeElement":        {"marquee"},
	"HTMLMediaElement":          {"media"},
	"HTMLMenuElement":           {"menu"},
	"HTMLMenuItemElement":       {"menuitem"},
	"HTMLMetaElement":           {"meta"},
	"HTMLMeterElement":          {"meter"},
	"HTMLModElement":            {"del", "ins"},
	"HTMLOListElement":          {"ol"},
	"HTMLObjectElement":         {"object"},
	"HTMLOptGroupElement":       {"optgroup"},
	"HTMLOptionElement":         {"option"},
	"HTMLOutputElement":         {"output"},
	"HTMLParagraphElement":      {"p"},
	"HTMLParamElement":          {"param"},
	"HTMLPictureElement":        {"picture"},
	"HTMLPreElement":            {"pre"},
	"HTMLProgressElement":       {"progress"},
	"HTMLQuoteElement":          {"blockquote", "q", "quote"},
	"HTMLScriptElement":         {"script"},
	"HTMLSelectElement":         {"select"},
	"HTMLShadowElement":         {"shadow"},
	"HTMLSlotElement":           {"slot"},
	"HTMLSourceElement":         {"source"},
	"HTMLSpanElement":           {"span"},
	"HTMLStyleElement":          {"style"},
	"HTMLTableCaptionElement":   {"caption"},
	"HTMLTableCellElement":      {"td", "th"},
	"HTMLTableColElement":       {"col", "colgroup"},
	"HTMLTableElement":          {"table"},
	"HTMLTableRowElement":       {"tr"},
	"HTMLTableSectionElement":   {"thead", "tbody", "tfoot"},
	"HTMLTemplateElement":       {"template"},
	"HTMLTextAreaElement":       {"textarea"},
	"HTMLTimeElement":           {"time"},
	"HTMLTitleElement":          {"title"},
	"HTMLTrackElement":          {"track"},
	"HTMLUListElement":          {"ul"},
	HTMLUnknownElementInterface: {"unknown", "vhgroupv", "vkeygen"},
	"HTMLVideoElement":          {"video"},
}

var interfaceByTag = func() map[string]Interface {
	tags := make(map[string]Interface)
	for iface, names := range elementInterfaces {
		for _, name := range names {
			tags[name] = iface
		}
	}
	return tags
}()

// BuiltinInterface returns the interface a plain element named tagName is
// created with. Unknown names map to HTMLUnknownElement.
func BuiltinInterface(tagName string) Interface {
	if iface, ok := interfaceByTag[tagName]; ok {
		return iface
	}
	return HTMLUnknownElementInterface
}

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

func isVoidElement(localName string) bool {
	return voidElements[atom.Lookup([]byte(localName))]
}
