package place

import (
	"strconv"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

const (
	fieldID          = "id"
	fieldSlug        = "slug"
	fieldName        = "name"
	fieldStreet      = "street"
	fieldCity        = "city"
	fieldState       = "state"
	fieldPostalCode  = "postal_code"
	fieldLat         = "lat"
	fieldLng         = "lng"
	fieldPhone       = "phone"
	fieldWebsite     = "website"
	fieldRating      = "rating"
	fieldRatingCount = "rating_count"
)

func buildHashFields(p *directory.Place) map[string]string {
	m := map[string]string{
		fieldID:         p.ID,
		fieldSlug:       p.Slug,
		fieldName:       p.Name,
		fieldStreet:     p.Street,
		fieldCity:       p.City,
		fieldState:      p.State,
		fieldPostalCode: p.PostalCode,
		fieldPhone:      p.Phone,
		fieldWebsite:    p.Website,
	}
	if pt, ok := p.Coordinates.Get(); ok {
		m[fieldLat] = strconv.FormatFloat(pt.Lat, 'f', -1, 64)
		m[fieldLng] = strconv.FormatFloat(pt.Lng, 'f', -1, 64)
	}
	if v, ok := p.Rating.Get(); ok {
		m[fieldRating] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v, ok := p.RatingCount.Get(); ok {
		m[fieldRatingCount] = strconv.Itoa(v)
	}
	return m
}

func parseHashFields(m map[string]string) directory.Place {
	p := directory.Place{
		ID:         m[fieldID],
		Slug:       m[fieldSlug],
		Name:       m[fieldName],
		Street:     m[fieldStreet],
		City:       m[fieldCity],
		State:      m[fieldState],
		PostalCode: m[fieldPostalCode],
		Phone:      m[fieldPhone],
		Website:    m[fieldWebsite],
	}

	lat, errLat := strconv.ParseFloat(m[fieldLat], 64)
	lng, errLng := strconv.ParseFloat(m[fieldLng], 64)
	if errLat == nil && errLng == nil {
		if pt, ok := geo.NewPoint(lat, lng); ok {
			p.Coordinates = optional.Of(pt)
		}
	}
	if v, err := strconv.ParseFloat(m[fieldRating], 64); err == nil {
		p.Rating = optional.Of(v)
	}
	if v, err := strconv.Atoi(m[fieldRatingCount]); err == nil {
		p.RatingCount = optional.Of(v)
	}
	return p
}
