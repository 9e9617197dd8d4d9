package feed

import (
	"encoding/xml"
	"fmt"
)

// Logical feed document tree. Serialization is delegated to encoding/xml;
// the assembler only builds these values.

type Document struct {
	XMLName   xml.Name `xml:"rss"`
	Version   string   `xml:"version,attr"`
	ContentNS string   `xml:"xmlns:content,attr"`
	AtomNS    string   `xml:"xmlns:atom,attr"`
	ITunesNS  string   `xml:"xmlns:itunes,attr"`
	MediaNS   string   `xml:"xmlns:media,attr"`
	Channel   Channel  `xml:"channel"`
}

type Channel struct {
	Title         string         `xml:"title"`
	Description   string         `xml:"description"`
	Link          string         `xml:"link"`
	Language      string         `xml:"language,omitempty"`
	LastBuildDate string         `xml:"lastBuildDate"`
	PubDate       string         `xml:"pubDate"`
	TTL           int            `xml:"ttl,omitempty"`
	AtomLinks     []AtomLink     `xml:"atom:link"`
	Copyright     string         `xml:"copyright,omitempty"`
	Author        string         `xml:"itunes:author,omitempty"`
	Subtitle      string         `xml:"itunes:subtitle,omitempty"`
	Summary       string         `xml:"itunes:summary,omitempty"`
	Explicit      string         `xml:"itunes:explicit"`
	Owner         *Owner         `xml:"itunes:owner,omitempty"`
	Category      *Category      `xml:"itunes:category,omitempty"`
	Type          string         `xml:"itunes:type,omitempty"`
	Image         *Image         `xml:"itunes:image,omitempty"`
	Items         []DocumentItem `xml:"item"`
}

type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

type Owner struct {
	Name  string `xml:"itunes:name"`
	Email string `xml:"itunes:email"`
}

type Category struct {
	Text        string    `xml:"text,attr"`
	Subcategory *Category `xml:"itunes:category,omitempty"`
}

type Image struct {
	Href string `xml:"href,attr"`
}

type GUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type EncodedContent struct {
	Text string `xml:",cdata"`
}

type EnclosureElement struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type MediaContent struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"fileSize,attr"`
	Type   string `xml:"type,attr"`
	Title  string `xml:"media:title"`
}

type DocumentItem struct {
	GUID        GUID             `xml:"guid"`
	Title       string           `xml:"title"`
	Description string           `xml:"description"`
	Link        string           `xml:"link"`
	PubDate     string           `xml:"pubDate"`
	Content     *EncodedContent  `xml:"content:encoded,omitempty"`
	Author      string           `xml:"itunes:author,omitempty"`
	Subtitle    string           `xml:"itunes:subtitle,omitempty"`
	Summary     string           `xml:"itunes:summary,omitempty"`
	Explicit    string           `xml:"itunes:explicit"`
	Duration    string           `xml:"itunes:duration"`
	Image       *Image           `xml:"itunes:image,omitempty"`
	Episode     *int             `xml:"itunes:episode,omitempty"`
	Season      *int             `xml:"itunes:season,omitempty"`
	Enclosure   EnclosureElement `xml:"enclosure"`
	Media       *MediaContent    `xml:"media:content,omitempty"`
}

// Serialize renders the document tree to feed text, indented or compact
// per the feed configuration.
func (d *Document) Serialize(indented bool) (string, error) {
	var data []byte
	var err error

	if indented {
		data, err = xml.MarshalIndent(d, "", "  ")
	} else {
		data, err = xml.Marshal(d)
	}
	if err != nil {
		return "", fmt.Errorf("failed to serialize feed document: %w", err)
	}

	return xml.Header + string(data), nil
}
