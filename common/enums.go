// Package common keeps enums shared between configuration and subcommands.
package common

// Specification of requested label sheet output.
// ENUM(pdf, xlsx, png)
type LabelsFmt int

// Specification of rewritten log output.
// ENUM(adi, adx)
type LogFmt int

func (o LabelsFmt) Ext() string {
	switch o {
	case LabelsFmtPdf:
		return ".pdf"
	case LabelsFmtXlsx:
		return ".xlsx"
	case LabelsFmtPng:
		return ".png"
	default:
		// this should never happen
		panic("unsupported labels format requested")
	}
}

func (o LogFmt) Ext() string {
	switch o {
	case LogFmtAdi:
		return ".adi"
	case LogFmtAdx:
		return ".adx"
	default:
		// this should never happen
		panic("unsupported log format requested")
	}
}
