package feed

import (
	"cmp"
	"fmt"
	"time"

	"github.com/sitecast/sitecast/app/content"
)

const (
	contentNamespace = "http://purl.org/rss/1.0/modules/content/"
	atomNamespace    = "http://www.w3.org/2005/Atom"
	itunesNamespace  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	mediaNamespace   = "http://search.yahoo.com/mrss/"
)

// Assembler combines feed-level metadata with the ordered rendered
// entries into one document tree. Entry order is preserved as given.
type Assembler struct {
	location *time.Location
}

func NewAssembler(location *time.Location) *Assembler {
	if location == nil {
		location = time.UTC
	}
	return &Assembler{location: location}
}

func (a *Assembler) Run(config Config, site content.Site, entries []Entry, date time.Time, formattedDate string) *Document {
	buildDate := formattedDate
	if buildDate == "" {
		buildDate = date.In(a.location).Format(time.RFC1123Z)
	}

	channel := Channel{
		Title:         cmp.Or(config.Title, site.Name),
		Description:   cmp.Or(config.Description, site.Description),
		Link:          cmp.Or(config.Link, site.URL),
		Language:      cmp.Or(config.Language, site.Language),
		LastBuildDate: buildDate,
		PubDate:       buildDate,
		TTL:           config.TTL,
		Copyright:     config.Copyright,
		Author:        cmp.Or(config.Author.Name, site.AuthorName),
		Subtitle:      config.Subtitle,
		Summary:       cmp.Or(config.Summary, config.Description, site.Description),
		Explicit:      explicitValue(config.Explicit),
		Type:          config.Type,
	}

	channel.AtomLinks = append(channel.AtomLinks, AtomLink{
		Href: site.URLFor(config.TargetPath),
		Rel:  "self",
		Type: "application/rss+xml",
	})
	if config.HubURL != "" {
		channel.AtomLinks = append(channel.AtomLinks, AtomLink{
			Href: config.HubURL,
			Rel:  "hub",
		})
	}

	ownerName := cmp.Or(config.Author.Name, site.AuthorName)
	ownerEmail := cmp.Or(config.Author.Email, site.AuthorEmail)
	if ownerName != "" || ownerEmail != "" {
		channel.Owner = &Owner{Name: ownerName, Email: ownerEmail}
	}

	if config.Category != "" {
		category := &Category{Text: config.Category}
		if config.Subcategory != "" {
			category.Subcategory = &Category{Text: config.Subcategory}
		}
		channel.Category = category
	}

	if imageURL := cmp.Or(config.ImageURL, site.ImageURL); imageURL != "" {
		channel.Image = &Image{Href: imageURL}
	}

	channel.Items = make([]DocumentItem, 0, len(entries))
	for _, entry := range entries {
		channel.Items = append(channel.Items, a.buildItem(entry))
	}

	return &Document{
		Version:   "2.0",
		ContentNS: contentNamespace,
		AtomNS:    atomNamespace,
		ITunesNS:  itunesNamespace,
		MediaNS:   mediaNamespace,
		Channel:   channel,
	}
}

func (a *Assembler) buildItem(entry Entry) DocumentItem {
	item := DocumentItem{
		GUID:        GUID{Value: entry.GUID, IsPermaLink: true},
		Title:       entry.Title,
		Description: entry.Description,
		Link:        entry.Link,
		PubDate:     entry.PublishedAt.In(a.location).Format(time.RFC1123Z),
		Author:      entry.Author,
		Subtitle:    entry.Subtitle,
		Summary:     entry.Summary,
		Explicit:    explicitValue(entry.Explicit),
		Duration:    formatDuration(entry.Duration),
		Episode:     entry.Episode,
		Season:      entry.Season,
		Enclosure: EnclosureElement{
			URL:    entry.Enclosure.URL,
			Length: entry.Enclosure.Length,
			Type:   entry.Enclosure.Type,
		},
	}

	if entry.Content != "" {
		item.Content = &EncodedContent{Text: entry.Content}
	}
	if entry.ImageURL != "" {
		item.Image = &Image{Href: entry.ImageURL}
	}
	if entry.Enclosure.URL != "" {
		item.Media = &MediaContent{
			URL:    entry.Enclosure.URL,
			Length: entry.Enclosure.Length,
			Type:   entry.Enclosure.Type,
			Title:  entry.Enclosure.Title,
		}
	}

	return item
}

func explicitValue(explicit bool) string {
	if explicit {
		return "yes"
	}
	return "no"
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
