package blockpalettes

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PalettesWithBlocks returns the palettes on `page` that contain every block
// in `blocks`.
//
// The listing endpoint only filters on one block per request, so one request
// is made per block (concurrently) and the combined palettes are filtered
// down to those containing all of them. A palette matched by several
// requests shows up once per request.
//
// TotalResults and TotalPages are copied from the first response, in the
// order of `blocks`, that reported a nonzero total. They describe that
// single-block query and not the returned palettes.
//
// With no blocks this is a single unfiltered Palettes call. If any request
// fails the whole call fails with that error.
func (c *Client) PalettesWithBlocks(
	ctx context.Context,
	blocks []string,
	sort SortOrder,
	page, limit uint32,
) (PaletteListResult, error) {
	if len(blocks) == 0 {
		return c.Palettes(ctx, PalettesQuery{Sort: sort, Page: page, Limit: limit})
	}

	_, err := PalettesQuery{Sort: sort, Page: page, Limit: limit}.params()
	if err != nil {
		return PaletteListResult{}, wrapError("palettes-with-blocks", err)
	}

	c.tel.ReportDebug(report_client_palettes_with_block, blocks, sort, page, limit)

	responses := make([]PaletteListResult, len(blocks))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, block := range blocks {
		group.Go(func() error {
			res, err := c.Palettes(groupCtx, PalettesQuery{
				Block: block,
				Sort:  sort,
				Page:  page,
				Limit: limit,
			})
			if err != nil {
				return err
			}
			responses[i] = res
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		// the failing request already reported itself
		c.tel.ReportWarning(
			report_client_palettes_with_block,
			fmt.Errorf("fan-out: %w", err),
			blocks,
		)
		return PaletteListResult{}, err
	}

	merged := mergeBlockResponses(blocks, responses)
	c.tel.ReportCount(report_client_palettes_with_block, int64(len(merged.Palettes)))
	return merged, nil
}

// mergeBlockResponses combines the per-block responses, `responses[i]`
// must be the response for `blocks[i]`.
func mergeBlockResponses(blocks []string, responses []PaletteListResult) PaletteListResult {
	merged := PaletteListResult{
		Success:  true,
		Palettes: []PaletteSummary{},
	}

	for _, res := range responses {
		if merged.TotalResults == 0 && res.TotalResults != 0 {
			merged.TotalResults = res.TotalResults
			merged.TotalPages = res.TotalPages
		}
		for _, palette := range res.Palettes {
			if palette.ContainsAll(blocks) {
				merged.Palettes = append(merged.Palettes, palette)
			}
		}
	}

	return merged
}
