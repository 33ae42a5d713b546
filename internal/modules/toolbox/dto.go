package toolbox

type NumbersRequest struct {
	Numbers []float64 `json:"numbers" binding:"required"`
}

type IntegersRequest struct {
	Numbers []int64 `json:"numbers" binding:"required"`
}

type FilterEvenRequest struct {
	Numbers  []int64 `json:"numbers" binding:"required"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

type FilterEvenResponse struct {
	Numbers  []int64 `json:"numbers"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int     `json:"total"`
}

type BinarySearchRequest struct {
	Numbers []int64 `json:"numbers" binding:"required"`
	Target  int64   `json:"target"`
}

type BinarySearchResponse struct {
	Found bool `json:"found"`
	Index int  `json:"index"`
}

type PrimeResponse struct {
	Number  int64 `json:"number"`
	IsPrime bool  `json:"is_prime"`
}
