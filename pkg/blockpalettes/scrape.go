package blockpalettes

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"blockpalettes/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

func compileSelector(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &SelectorError{Selector: selector, Err: err}
	}
	return sel, nil
}

// ScrapePalettePage fetches /palette/{paletteId} and reads the palette's
// blocks and the ids of the similar palettes linked from it.
//
// A block's name is the trimmed text of its last text node that is not all
// whitespace, so indentation after the name never yields an empty entry.
// Block elements without any text and palette cards without a numeric id at
// the end of their href are skipped. A page with neither yields empty slices.
func (c *Client) ScrapePalettePage(ctx context.Context, paletteId uint64) (PalettePageExtract, error) {
	if paletteId == 0 {
		return PalettePageExtract{}, wrapError(
			"scrape-palette-page",
			fmt.Errorf("%w: palette id must be at least 1", ErrInvalidArgument),
		)
	}

	blockSel, err := compileSelector(c.blockSelector)
	if err != nil {
		c.tel.ReportBroken(report_client_scrape_palette_page, err)
		return PalettePageExtract{}, wrapError("scrape-palette-page", err)
	}
	cardSel, err := compileSelector(c.cardSelector)
	if err != nil {
		c.tel.ReportBroken(report_client_scrape_palette_page, err)
		return PalettePageExtract{}, wrapError("scrape-palette-page", err)
	}

	id := strconv.FormatUint(paletteId, 10)
	c.tel.ReportDebug(report_client_scrape_palette_page, id)

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/palette/{id}")
	if err != nil {
		c.tel.ReportBroken(
			report_client_scrape_palette_page,
			fmt.Errorf("fetch: %w", err),
			id,
		)
		return PalettePageExtract{}, wrapError("scrape-palette-page", err)
	}
	if res.IsError() {
		statusErr := &StatusError{StatusCode: res.StatusCode(), Status: res.Status()}
		c.tel.ReportBroken(report_client_scrape_palette_page, statusErr, id)
		return PalettePageExtract{}, wrapError("scrape-palette-page", statusErr)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(
			report_client_scrape_palette_page,
			fmt.Errorf("parse: %w", err),
			id,
		)
		return PalettePageExtract{}, wrapError("scrape-palette-page", fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}

	extract := extractPalettePage(doc.Selection, blockSel, cardSel)
	if len(extract.Blocks) == 0 {
		c.tel.ReportWarning(report_client_scrape_palette_page, "no blocks found", id)
	}
	return extract, nil
}

func extractPalettePage(doc *goquery.Selection, blockSel, cardSel goquery.Matcher) PalettePageExtract {
	extract := PalettePageExtract{
		Blocks:            []string{},
		SimilarPaletteIDs: []uint64{},
	}

	// the block name is the trailing text, it sits behind a label
	for _, node := range doc.FindMatcher(blockSel).Nodes {
		name, ok := htmlutil.LastText(node)
		if !ok {
			continue
		}
		extract.Blocks = append(extract.Blocks, name)
	}

	doc.FindMatcher(cardSel).Each(func(_ int, card *goquery.Selection) {
		href, exists := card.Attr("href")
		if !exists {
			return
		}
		id, err := strconv.ParseUint(htmlutil.LastPathSegment(href), 10, 64)
		if err != nil {
			return
		}
		extract.SimilarPaletteIDs = append(extract.SimilarPaletteIDs, id)
	})

	return extract
}
