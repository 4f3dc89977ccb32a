package memory

import (
	"context"
	"strings"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type BranchRepository struct{}

func NewBranchRepository() *BranchRepository {
	return &BranchRepository{}
}

func (r *BranchRepository) GetAll(_ context.Context) ([]domain.Branch, error) {
	branches := []domain.Branch{
		{BranchName: "Head Office", BranchCode: "001"},
		{BranchName: "Mumbai Fort", BranchCode: "002"},
		{BranchName: "Delhi Connaught Place", BranchCode: "003"},
		{BranchName: "Bengaluru MG Road", BranchCode: "004"},
		{BranchName: "Chennai Anna Salai", BranchCode: "005"},
		{BranchName: "Kolkata Park Street", BranchCode: "006"},
		{BranchName: "Hyderabad Banjara Hills", BranchCode: "007"},
		{BranchName: "Pune FC Road", BranchCode: "008"},
		{BranchName: "Ahmedabad CG Road", BranchCode: "009"},
		{BranchName: "Jaipur MI Road", BranchCode: "010"},
	}

	return branches, nil
}

func (r *BranchRepository) Exists(ctx context.Context, branchCode string) (bool, error) {
	branches, err := r.GetAll(ctx)
	if err != nil {
		return false, err
	}
	code := strings.TrimSpace(branchCode)
	for _, branch := range branches {
		if branch.BranchCode == code {
			return true, nil
		}
	}
	return false, nil
}
