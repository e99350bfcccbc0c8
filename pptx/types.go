// Package pptx provides PPTX (Office Open XML Presentation) document parsing.
package pptx

import "encoding/xml"

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
	SlideSz     *slideSzXML     `xml:"sldSz"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"` // r:id attribute for relationship
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"` // Width in EMUs
	Cy int64 `xml:"cy,attr"` // Height in EMUs
}

// slideXML represents a ppt/slides/slide*.xml file structure.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree shapeTreeXML `xml:"spTree"`
}

// shapeTreeXML is a p:spTree or p:grpSp element. Children keeps the shapes
// in document order; see UnmarshalXML in shapetree.go.
type shapeTreeXML struct {
	NvGrpSpPr nvGrpSpPrXML
	GrpSpPr   spPrXML
	Children  []shapeNodeXML
}

// shapeNodeXML holds exactly one shape element.
type shapeNodeXML struct {
	Sp           *spXML
	Pic          *picXML
	GrpSp        *shapeTreeXML
	GraphicFrame *graphicFrameXML
	CxnSp        *cxnSpXML
}

type nvGrpSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type cNvPrXML struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Title string `xml:"title,attr"`
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML `xml:"nvSpPr"`
	SpPr   spPrXML   `xml:"spPr"`
}

type nvSpPrXML struct {
	CNvPr   cNvPrXML   `xml:"cNvPr"`
	CNvSpPr cNvSpPrXML `xml:"cNvSpPr"`
	NvPr    nvPrXML    `xml:"nvPr"`
}

type cNvSpPrXML struct {
	TxBox string `xml:"txBox,attr"` // "1" or "true" for text boxes
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"` // Placeholder info
}

type phXML struct {
	Type string `xml:"type,attr"` // title, body, subTitle, ctrTitle, etc.
	Idx  int    `xml:"idx,attr"`
}

// spPrXML holds shape properties: transform, geometry, fill and outline.
// Group shapes use the same structure for p:grpSpPr, which has no outline.
type spPrXML struct {
	Xfrm     *xfrmXML     `xml:"xfrm"`
	PrstGeom *prstGeomXML `xml:"prstGeom"`
	CustGeom *struct{}    `xml:"custGeom"`
	fillPropsXML
	Ln *lnXML `xml:"ln"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"` // X position in EMUs
	Y int64 `xml:"y,attr"` // Y position in EMUs
}

type extXML struct {
	Cx int64 `xml:"cx,attr"` // Width in EMUs
	Cy int64 `xml:"cy,attr"` // Height in EMUs
}

type prstGeomXML struct {
	Prst string `xml:"prst,attr"` // rect, ellipse, roundRect, ...
}

// fillPropsXML is the EG_FillProperties choice. At most one field is set.
type fillPropsXML struct {
	NoFill    *struct{}       `xml:"noFill"`
	SolidFill *colorChoiceXML `xml:"solidFill"`
	GradFill  *gradFillXML    `xml:"gradFill"`
	BlipFill  *blipFillXML    `xml:"blipFill"`
	PattFill  *pattFillXML    `xml:"pattFill"`
	GrpFill   *struct{}       `xml:"grpFill"`
}

type gradFillXML struct {
	GsLst *gsLstXML `xml:"gsLst"`
	Lin   *linXML   `xml:"lin"`
	Path  *pathXML  `xml:"path"`
}

type gsLstXML struct {
	Gs []gsXML `xml:"gs"`
}

// gsXML is a gradient stop; pos is a percentage in 1000ths.
type gsXML struct {
	Pos string `xml:"pos,attr"`
	colorChoiceXML
}

type linXML struct {
	Ang string `xml:"ang,attr"` // 60000ths of a degree, clockwise
}

type pathXML struct {
	Path string `xml:"path,attr"` // circle, rect, shape
}

type pattFillXML struct {
	Prst  string          `xml:"prst,attr"`
	FgClr *colorChoiceXML `xml:"fgClr"`
	BgClr *colorChoiceXML `xml:"bgClr"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"` // r:embed relationship ID
}

// lnXML is a:ln, the shape outline.
type lnXML struct {
	W string `xml:"w,attr"` // Width in EMUs
	fillPropsXML
	PrstDash *valXML   `xml:"prstDash"`
	CustDash *struct{} `xml:"custDash"`
}

// colorChoiceXML is the EG_ColorChoice group. At most one field is set.
type colorChoiceXML struct {
	SrgbClr   *valColorXML   `xml:"srgbClr"`
	SchemeClr *valColorXML   `xml:"schemeClr"`
	PrstClr   *valColorXML   `xml:"prstClr"`
	HslClr    *hslColorXML   `xml:"hslClr"`
	ScrgbClr  *scrgbColorXML `xml:"scrgbClr"`
	SysClr    *sysColorXML   `xml:"sysClr"`
}

// colorModsXML holds the color transforms that affect brightness.
type colorModsXML struct {
	LumMod *valXML `xml:"lumMod"`
	LumOff *valXML `xml:"lumOff"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

type valColorXML struct {
	Val string `xml:"val,attr"`
	colorModsXML
}

type hslColorXML struct {
	Hue string `xml:"hue,attr"` // 60000ths of a degree
	Sat string `xml:"sat,attr"` // Percentage in 1000ths
	Lum string `xml:"lum,attr"` // Percentage in 1000ths
	colorModsXML
}

type scrgbColorXML struct {
	R string `xml:"r,attr"`
	G string `xml:"g,attr"`
	B string `xml:"b,attr"`
	colorModsXML
}

type sysColorXML struct {
	Val     string `xml:"val,attr"`
	LastClr string `xml:"lastClr,attr"`
	colorModsXML
}

// picXML represents a picture element.
type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"nvPicPr"`
	BlipFill blipFillXML `xml:"blipFill"`
	SpPr     spPrXML     `xml:"spPr"`
}

type nvPicPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

// cxnSpXML represents a connector.
type cxnSpXML struct {
	NvCxnSpPr nvCxnSpPrXML `xml:"nvCxnSpPr"`
	SpPr      spPrXML      `xml:"spPr"`
}

type nvCxnSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

// graphicFrameXML represents a graphic frame (tables, charts).
type graphicFrameXML struct {
	NvGraphicFramePr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
	Xfrm             *xfrmXML            `xml:"xfrm"`
	Graphic          graphicXML          `xml:"graphic"`
}

type nvGraphicFramePrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI string `xml:"uri,attr"`
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Subject     string   `xml:"subject"`
	Creator     string   `xml:"creator"`
	Keywords    string   `xml:"keywords"`
	Description string   `xml:"description"`
	LastModBy   string   `xml:"lastModifiedBy"`
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
	Slides      int      `xml:"Slides"`
}
