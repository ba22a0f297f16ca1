package carsrs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-management/pkg/core/model"
)

// rawCarReq fields are pointers, so an absent field can be told apart
// from its zero value. Constraints are checked by model.CarDraft, but
// years which do not fit in 32 bits are rejected while decoding.
type rawCarReq struct {
	Marca *string  `json:"marca"`
	Model *string  `json:"model"`
	An    *int32   `json:"an"`
	Pret  *float64 `json:"pret"`
}

type rawCarIDReq struct {
	ID string `uri:"id" binding:"required,number"`
}

func (rs *resource) DserAddCarReq(c *gin.Context) (model.CarDraft, bool) {
	req := &rawCarReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return model.CarDraft{}, false
	}
	d := model.CarDraft{
		Marca: req.Marca,
		Model: req.Model,
		Pret:  req.Pret,
	}
	if req.An != nil {
		an := int(*req.An)
		d.An = &an
	}
	return d, true
}

func (rs *resource) DserCarIDReq(c *gin.Context) (int64, bool) {
	req := &rawCarIDReq{}
	var errs map[string][]string
	var id int64
	if serdser.Assert(
		&errs, c.ShouldBindUri(req) == nil,
		"id", "Path param id must be a number.",
	) {
		var err error
		id, err = strconv.ParseInt(req.ID, 10, 64)
		serdser.Assert(
			&errs, err == nil, "id", "Path param id is out of range.",
		)
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return 0, false
	}
	return id, true
}
