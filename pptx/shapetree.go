package pptx

import "encoding/xml"

// UnmarshalXML decodes a shape tree keeping its children in document order,
// which is the z-order PowerPoint draws them in and the order shapes are
// paired in. encoding/xml would otherwise split them into one slice per
// element name.
func (t *shapeTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if err := t.decodeChild(d, el); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (t *shapeTreeXML) decodeChild(d *xml.Decoder, el xml.StartElement) error {
	switch el.Name.Local {
	case "nvGrpSpPr":
		return d.DecodeElement(&t.NvGrpSpPr, &el)
	case "grpSpPr":
		return d.DecodeElement(&t.GrpSpPr, &el)
	case "sp":
		sp := &spXML{}
		if err := d.DecodeElement(sp, &el); err != nil {
			return err
		}
		t.Children = append(t.Children, shapeNodeXML{Sp: sp})
	case "pic":
		pic := &picXML{}
		if err := d.DecodeElement(pic, &el); err != nil {
			return err
		}
		t.Children = append(t.Children, shapeNodeXML{Pic: pic})
	case "grpSp":
		grp := &shapeTreeXML{}
		if err := d.DecodeElement(grp, &el); err != nil {
			return err
		}
		t.Children = append(t.Children, shapeNodeXML{GrpSp: grp})
	case "graphicFrame":
		gf := &graphicFrameXML{}
		if err := d.DecodeElement(gf, &el); err != nil {
			return err
		}
		t.Children = append(t.Children, shapeNodeXML{GraphicFrame: gf})
	case "cxnSp":
		cxn := &cxnSpXML{}
		if err := d.DecodeElement(cxn, &el); err != nil {
			return err
		}
		t.Children = append(t.Children, shapeNodeXML{CxnSp: cxn})
	case "AlternateContent":
		return t.decodeAlternateContent(d)
	default:
		return d.Skip()
	}
	return nil
}

// decodeAlternateContent reads the shapes of mc:Fallback and skips every
// mc:Choice, since the choices need extensions this reader does not know.
func (t *shapeTreeXML) decodeAlternateContent(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local != "Fallback" {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := t.decodeFallback(d); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (t *shapeTreeXML) decodeFallback(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if err := t.decodeChild(d, el); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}
