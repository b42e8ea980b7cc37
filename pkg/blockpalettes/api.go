package blockpalettes

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

type searchBlocksResponse struct {
	Success *bool     `json:"success"`
	Blocks  *[]string `json:"blocks"`
}

func (r searchBlocksResponse) check() error {
	return checkFields(
		wireField{"success", r.Success != nil},
		wireField{"blocks", r.Blocks != nil},
	)
}

// SearchBlocks returns the block names matching `query`.
func (c *Client) SearchBlocks(ctx context.Context, query string) ([]string, error) {
	var res searchBlocksResponse
	err := getJSON(
		ctx, c, "search-blocks", report_client_search_blocks,
		"/api/palettes/search-block.php",
		map[string]string{"query": query},
		&res,
	)
	if err != nil {
		return nil, err
	}
	if !*res.Success {
		return nil, &ApiError{Op: "search-blocks", Message: "search failed"}
	}
	return *res.Blocks, nil
}

type popularBlocksResponse struct {
	Success *bool           `json:"success"`
	Blocks  *[]PopularBlock `json:"blocks"`
}

func (r popularBlocksResponse) check() error {
	return checkFields(
		wireField{"success", r.Success != nil},
		wireField{"blocks", r.Blocks != nil},
	)
}

// PopularBlocks returns the most used blocks with their usage counts.
func (c *Client) PopularBlocks(ctx context.Context) ([]PopularBlock, error) {
	var res popularBlocksResponse
	err := getJSON(
		ctx, c, "popular-blocks", report_client_popular_blocks,
		"/api/palettes/popular-blocks.php",
		nil,
		&res,
	)
	if err != nil {
		return nil, err
	}
	if !*res.Success {
		return nil, &ApiError{Op: "popular-blocks", Message: "popular blocks request failed"}
	}
	return *res.Blocks, nil
}

// PalettesQuery is a single request to the palette listing endpoint.
type PalettesQuery struct {
	// Block restricts the listing to palettes containing this block, the
	// upstream accepts at most one. Empty means no filter.
	Block string
	// Sort defaults to SortRecent.
	Sort  SortOrder
	Page  uint32
	Limit uint32
}

func (q PalettesQuery) params() (map[string]string, error) {
	if q.Page == 0 {
		return nil, fmt.Errorf("%w: page must be at least 1", ErrInvalidArgument)
	}
	if q.Limit == 0 {
		return nil, fmt.Errorf("%w: limit must be at least 1", ErrInvalidArgument)
	}
	sort := q.Sort
	if sort == "" {
		sort = SortRecent
	}
	params := map[string]string{
		"sort":  sort.String(),
		"page":  strconv.FormatUint(uint64(q.Page), 10),
		"limit": strconv.FormatUint(uint64(q.Limit), 10),
	}
	if q.Block != "" {
		params["blocks"] = q.Block
	}
	return params, nil
}

// Palettes makes exactly one request to the listing endpoint and returns its
// result as is, `success: false` is not turned into an error.
func (c *Client) Palettes(ctx context.Context, query PalettesQuery) (PaletteListResult, error) {
	params, err := query.params()
	if err != nil {
		return PaletteListResult{}, wrapError("palettes", err)
	}

	var res PaletteListResult
	err = getJSON(
		ctx, c, "palettes", report_client_palettes,
		"/api/palettes/all_palettes.php",
		params,
		&res,
	)
	if err != nil {
		return PaletteListResult{}, err
	}
	if !res.Success {
		c.tel.ReportWarning(report_client_palettes, "upstream reported failure", params)
	}
	return res, nil
}

type singlePaletteResponse struct {
	Success *bool `json:"success"`
	// decoded only once success is known, a failed lookup may carry anything here
	Palette json.RawMessage `json:"palette"`
}

func (r singlePaletteResponse) check() error {
	return checkFields(wireField{"success", r.Success != nil})
}

// Palette returns a single palette along with its creator's name.
func (c *Client) Palette(ctx context.Context, id uint64) (PaletteDetail, error) {
	if id == 0 {
		return PaletteDetail{}, wrapError("palette", fmt.Errorf("%w: id must be at least 1", ErrInvalidArgument))
	}

	var res singlePaletteResponse
	err := getJSON(
		ctx, c, "palette", report_client_palette,
		"/api/palettes/single_palette.php",
		map[string]string{"id": strconv.FormatUint(id, 10)},
		&res,
	)
	if err != nil {
		return PaletteDetail{}, err
	}
	if !*res.Success {
		return PaletteDetail{}, &ApiError{Op: "palette", Message: "palette not found"}
	}

	var palette PaletteDetail
	err = checkFields(wireField{"palette", len(res.Palette) > 0 && string(res.Palette) != "null"})
	if err == nil {
		err = json.Unmarshal(res.Palette, &palette)
	}
	if err != nil {
		c.tel.ReportBroken(
			report_client_palette,
			fmt.Errorf("unmarshal palette: %w", err),
			id,
		)
		return PaletteDetail{}, wrapError("palette", fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	return palette, nil
}

type similarPalettesResponse struct {
	Success  *bool             `json:"success"`
	Palettes *[]PaletteSummary `json:"palettes"`
}

func (r similarPalettesResponse) check() error {
	return checkFields(
		wireField{"success", r.Success != nil},
		wireField{"palettes", r.Palettes != nil},
	)
}

// SimilarPalettes returns the palettes the upstream considers similar to
// `paletteId`.
func (c *Client) SimilarPalettes(ctx context.Context, paletteId uint64) ([]PaletteSummary, error) {
	if paletteId == 0 {
		return nil, wrapError("similar-palettes", fmt.Errorf("%w: palette id must be at least 1", ErrInvalidArgument))
	}

	var res similarPalettesResponse
	err := getJSON(
		ctx, c, "similar-palettes", report_client_similar_palettes,
		"/api/palettes/similar_palettes.php",
		map[string]string{"palette_id": strconv.FormatUint(paletteId, 10)},
		&res,
	)
	if err != nil {
		return nil, err
	}
	if !*res.Success {
		return nil, &ApiError{Op: "similar-palettes", Message: "similar palettes not found"}
	}
	return *res.Palettes, nil
}
