package mapper

import (
	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

// RegionPatchFromRequest copies the scalar fields. The location is wrapped
// separately because it has to pass polygon construction first.
func RegionPatchFromRequest(req dto.UpdateRegionRequest) entity.RegionPatch {
	return entity.RegionPatch{
		Name:    entity.FromPtr(req.Name),
		OwnerID: entity.FromPtr(req.OwnerID),
	}
}

func ToRegionResponse(r *entity.Region) dto.RegionResponse {
	out := dto.RegionResponse{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Owner:     ToUserResponse(r.Owner),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	return out
}

func ToRegionResponses(regions []*entity.Region) []dto.RegionResponse {
	out := make([]dto.RegionResponse, 0, len(regions))
	for _, r := range regions {
		out = append(out, ToRegionResponse(r))
	}
	return out
}
