package dto

import "github.com/jaennil/guide_helper/backend/mapcore/internal/urltemplate"

type Parameter struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type UpdateSourceRequest struct {
	URLTemplate string      `json:"url_template" validate:"required,url_template"`
	Parameters  []Parameter `json:"parameters" validate:"dive"`
	OfflineMode *bool       `json:"offline_mode"`
}

func (r UpdateSourceRequest) ToParameters() urltemplate.Parameters {
	params := make(urltemplate.Parameters, 0, len(r.Parameters))
	for _, p := range r.Parameters {
		params.Add(p.Key, p.Value)
	}
	return params
}
