package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var copyOpts = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
	},
}

func copyView(to, from any) error {
	return copier.CopyWithOption(to, from, copyOpts)
}
