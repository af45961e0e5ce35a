package jellyfin

import (
	"context"
	"fmt"

	jellyfin "github.com/sj14/jellyfin-go/api"
)

// DefaultAspectRatio is the poster width/height ratio assumed when the
// server does not report one.
const DefaultAspectRatio = 2.0 / 3.0

// MediaItem is the part of a Jellyfin item the gallery shows.
type MediaItem struct {
	ID          string
	Name        string
	Type        string // Movie, Series, CollectionFolder, ...
	Year        int
	AspectRatio float64 // primary image width/height
	ImageTags   map[string]string
}

// HasPoster reports whether the item carries a primary image.
func (m MediaItem) HasPoster() bool {
	_, ok := m.ImageTags[string(ImagePrimary)]
	return ok
}

// GetViews returns the user's libraries, the candidates for a gallery.
func (c *Client) GetViews(ctx context.Context) ([]MediaItem, error) {
	result, resp, err := c.api.UserViewsAPI.GetUserViews(ctx).UserId(c.session.UserID).Execute()
	if err != nil {
		return nil, fmt.Errorf("get views: %w (status: %s)", err, respStatus(resp))
	}
	return convertItems(result.Items), nil
}

// GetPosters returns one page of movies and series under parentID, sorted
// by name, and the total number of matching items.
func (c *Client) GetPosters(ctx context.Context, parentID string, start, limit int) ([]MediaItem, int, error) {
	req := c.api.ItemsAPI.GetItems(ctx).
		UserId(c.session.UserID).
		StartIndex(int32(start)).
		Limit(int32(limit)).
		Fields([]jellyfin.ItemFields{jellyfin.ITEMFIELDS_PRIMARY_IMAGE_ASPECT_RATIO}).
		EnableImageTypes([]jellyfin.ImageType{jellyfin.IMAGETYPE_PRIMARY}).
		ImageTypeLimit(1).
		Recursive(true).
		IncludeItemTypes([]jellyfin.BaseItemKind{
			jellyfin.BASEITEMKIND_MOVIE,
			jellyfin.BASEITEMKIND_SERIES,
		}).
		SortBy([]jellyfin.ItemSortBy{jellyfin.ITEMSORTBY_SORT_NAME}).
		SortOrder([]jellyfin.SortOrder{jellyfin.SORTORDER_ASCENDING})
	if parentID != "" {
		req = req.ParentId(parentID)
	}
	result, resp, err := req.Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("get posters %d+%d: %w (status: %s)", start, limit, err, respStatus(resp))
	}
	total := 0
	if result.TotalRecordCount != nil {
		total = int(*result.TotalRecordCount)
	}
	return convertItems(result.Items), total, nil
}

func convertItems(items []jellyfin.BaseItemDto) []MediaItem {
	result := make([]MediaItem, 0, len(items))
	for _, item := range items {
		result = append(result, convertBaseItemDto(&item))
	}
	return result
}

func convertBaseItemDto(item *jellyfin.BaseItemDto) MediaItem {
	mi := MediaItem{AspectRatio: DefaultAspectRatio}
	if item.Id != nil {
		mi.ID = *item.Id
	}
	mi.Name = item.GetName()
	if item.Type != nil {
		mi.Type = string(*item.Type)
	}
	mi.Year = int(item.GetProductionYear())
	if r := item.GetPrimaryImageAspectRatio(); r > 0 {
		mi.AspectRatio = r
	}

	if len(item.ImageTags) > 0 {
		mi.ImageTags = make(map[string]string)
		for k, v := range item.ImageTags {
			mi.ImageTags[k] = v
		}
	}
	return mi
}
