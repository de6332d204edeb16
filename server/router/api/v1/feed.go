package v1

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	apierrors "github.com/communitymap/communitymap/server/internal/errors"
	"github.com/communitymap/communitymap/store"
)

const feedItemLimit = 20

func (s *APIV1Service) getFeed(c echo.Context) error {
	normalStatus := store.Normal
	list, err := s.Store.ListResources(c.Request().Context(), &store.FindResource{RowStatus: &normalStatus})
	if err != nil {
		return errorResponse(c, apierrors.Internal("failed to list resources", err))
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedTs > list[j].CreatedTs
	})
	if len(list) > feedItemLimit {
		list = list[:feedItemLimit]
	}

	instanceURL := s.Profile.InstanceURL
	feed := &feeds.Feed{
		Title:       "Community Resource Directory",
		Link:        &feeds.Link{Href: instanceURL},
		Description: "Recently added community resources",
		Created:     time.Now(),
	}
	for _, r := range list {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       r.Name,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/resources/%s", instanceURL, r.UID)},
			Description: fmt.Sprintf("%s (%s) at %s", r.Name, r.Category, r.Address),
			Id:          r.UID,
			Created:     time.Unix(r.CreatedTs, 0),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return errorResponse(c, apierrors.Internal("failed to render feed", err))
	}
	return c.Blob(http.StatusOK, "application/rss+xml", []byte(rss))
}
