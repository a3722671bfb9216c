package store

import (
	"context"
	stderrors "errors"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

func keyword() map[string]interface{} { return map[string]interface{}{"type": "keyword"} }
func date() map[string]interface{}    { return map[string]interface{}{"type": "date"} }

func unindexed() map[string]interface{} {
	return map[string]interface{}{"type": "keyword", "index": false}
}

// textWithKeyword is searchable text that can also be sorted, aggregated and
// matched by substring through its keyword subfield.
func textWithKeyword() map[string]interface{} {
	return map[string]interface{}{
		"type": "text",
		"fields": map[string]interface{}{
			"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256},
		},
	}
}

func object(properties map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"properties": properties}
}

// OfferMapping is the offers index definition.
var OfferMapping = map[string]interface{}{
	"settings": map[string]interface{}{"number_of_shards": 1},
	"mappings": map[string]interface{}{
		"dynamic": "strict",
		"properties": map[string]interface{}{
			"id":              keyword(),
			"createdBy":       keyword(),
			"source":          keyword(),
			"sourceId":        keyword(),
			"sourceUrl":       unindexed(),
			"applyUrl":        unindexed(),
			"title":           textWithKeyword(),
			"descriptionText": map[string]interface{}{"type": "text"},
			"descriptionHtml": map[string]interface{}{"type": "text", "index": false},
			"companyName":     textWithKeyword(),
			"companyWebsite":  unindexed(),
			"companyIndustry": keyword(),
			"companyLogo":     unindexed(),
			"location": object(map[string]interface{}{
				"city":      keyword(),
				"region":    keyword(),
				"country":   keyword(),
				"formatted": map[string]interface{}{"type": "text"},
				"lat":       map[string]interface{}{"type": "double"},
				"lng":       map[string]interface{}{"type": "double"},
				"timezone":  keyword(),
			}),
			"workMode":       keyword(),
			"employmentType": keyword(),
			"postedAt":       date(),
			"validThrough":   date(),
			"salary": object(map[string]interface{}{
				"currency": keyword(),
				"min":      map[string]interface{}{"type": "double"},
				"max":      map[string]interface{}{"type": "double"},
				"unit":     keyword(),
				"rawText":  map[string]interface{}{"type": "text"},
			}),
			"skills":     keyword(),
			"tags":       keyword(),
			"isActive":   map[string]interface{}{"type": "boolean"},
			"scrapedAt":  date(),
			"lastSeenAt": date(),
			"dedupeHash": keyword(),
			"createdAt":  date(),
			"updatedAt":  date(),
		},
	},
}

// UserMapping is the users index definition. description.raw is a wildcard
// field so long descriptions stay matchable by substring.
var UserMapping = map[string]interface{}{
	"settings": map[string]interface{}{"number_of_shards": 1},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"id":        keyword(),
			"email":     keyword(),
			"firstName": textWithKeyword(),
			"lastName":  textWithKeyword(),
			"description": map[string]interface{}{
				"type":   "text",
				"fields": map[string]interface{}{"raw": map[string]interface{}{"type": "wildcard"}},
			},
			"dateOfBirth":     date(),
			"role":            keyword(),
			"imageUrl":        unindexed(),
			"contacts":        map[string]interface{}{"type": "object", "enabled": false},
			"employerProfile": map[string]interface{}{"type": "object", "enabled": false},
			"jobseekerProfile": object(map[string]interface{}{
				"stack":         keyword(),
				"portfolioUrls": unindexed(),
				"cvUrls":        unindexed(),
				"openToWork":    map[string]interface{}{"type": "boolean"},
				"preferences": object(map[string]interface{}{
					"employmentTypes": keyword(),
					"workModes":       keyword(),
				}),
				"studies": map[string]interface{}{"type": "object", "enabled": false},
			}),
			"savedJobseekers":      keyword(),
			"savedOffers":          keyword(),
			"savedJobseekersCount": map[string]interface{}{"type": "integer"},
			"savedOffersCount":     map[string]interface{}{"type": "integer"},
			"createdAt":            date(),
			"updatedAt":            date(),
		},
	},
}

// EnsureIndices creates any missing index with its mapping. It returns the
// names of the indices it created.
func (s *Store) EnsureIndices(ctx context.Context) ([]string, error) {
	var created []string
	for _, idx := range []struct {
		name    string
		mapping map[string]interface{}
	}{
		{s.offers, OfferMapping},
		{s.users, UserMapping},
	} {
		res, err := s.do(ctx, "index_exists", idx.name, esapi.IndicesExistsRequest{Index: []string{idx.name}})
		if err == nil {
			res.Body.Close()
			continue
		}
		if !stderrors.Is(err, errNotFound) {
			return created, err
		}

		body, err := jsonBody(idx.mapping)
		if err != nil {
			return created, err
		}
		res, err = s.do(ctx, "index_create", idx.name, esapi.IndicesCreateRequest{Index: idx.name, Body: body})
		if err != nil {
			return created, err
		}
		res.Body.Close()
		created = append(created, idx.name)
		s.logger.Info("index created", map[string]interface{}{"index": idx.name})
	}
	return created, nil
}

// DeleteIndices drops both indices. Missing indices are ignored.
func (s *Store) DeleteIndices(ctx context.Context) error {
	ignore := true
	res, err := s.do(ctx, "index_delete", s.offers+","+s.users, esapi.IndicesDeleteRequest{
		Index:             []string{s.offers, s.users},
		IgnoreUnavailable: &ignore,
	})
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}
