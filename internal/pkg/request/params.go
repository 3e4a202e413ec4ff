package request

// ListParams holds the offset/limit pagination pair used by listing
// endpoints (`from`/`size` query parameters).
type ListParams struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=20" binding:"min=1"`
}

// ByIDParam binds a numeric id path parameter.
type ByIDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}
