package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupModelInfo(t *testing.T) {
	testCases := []struct {
		name     string
		code     string
		expected ModelInfo
		found    bool
	}{
		{
			name:     "apple exact",
			code:     "Mac15,13",
			expected: ModelInfo{Name: `MacBook Air 15" (M3, 2024)`, Year: 2024, MSRP: 1299},
			found:    true,
		},
		{
			name:     "apple exact with surrounding whitespace",
			code:     "  MacBookPro18,3 ",
			expected: ModelInfo{Name: `MacBook Pro 14" (M1 Pro, 2021)`, Year: 2021, MSRP: 1999},
			found:    true,
		},
		{
			name:     "lenovo machine type prefix",
			code:     "21HK003MUS",
			expected: ModelInfo{Name: "ThinkPad P16s Gen 2", Year: 2023, MSRP: 1399},
			found:    true,
		},
		{
			name:     "lenovo prefix is case insensitive",
			code:     "21mc0001us",
			expected: ModelInfo{Name: "ThinkPad T14 Gen 5", Year: 2024, MSRP: 1199},
			found:    true,
		},
		{
			name:     "dell exact",
			code:     "Dell Inc. OptiPlex Micro 7010",
			expected: ModelInfo{Name: "Dell OptiPlex Micro 7010", Year: 2023, MSRP: 849},
			found:    true,
		},
		{
			name:     "dell keyword strips vendor boilerplate",
			code:     "Dell Inc. Latitude 7440",
			expected: ModelInfo{Name: "Dell Latitude 7440", Year: 0},
			found:    true,
		},
		{
			name:     "dell keyword with year like token",
			code:     "OptiPlex 2019 Edition",
			expected: ModelInfo{Name: "OptiPlex 2019 Edition", Year: 2019},
			found:    true,
		},
		{
			name:     "surface exact",
			code:     "Surface Pro 9",
			expected: ModelInfo{Name: "Microsoft Surface Pro 9", Year: 2022, MSRP: 999},
			found:    true,
		},
		{
			name:     "surface keyword with generation",
			code:     "Microsoft Surface Pro 7+",
			expected: ModelInfo{Name: "Microsoft Surface Pro 7+", Year: 2019},
			found:    true,
		},
		{
			name:     "surface keyword without generation",
			code:     "Surface Laptop Studio",
			expected: ModelInfo{Name: "Microsoft Surface Laptop Studio", Year: 0},
			found:    true,
		},
		{
			name:     "apple shaped unknown code",
			code:     "Mac99,1",
			expected: ModelInfo{Name: "Mac (Mac99,1)"},
			found:    true,
		},
		{
			name:     "apple shaped unknown macbook pro",
			code:     "MacBookPro99,9",
			expected: ModelInfo{Name: "MacBook Pro (MacBookPro99,9)"},
			found:    true,
		},
		{
			name:     "lenovo shaped unknown code",
			code:     "2ZZZ001XUS",
			expected: ModelInfo{Name: "Lenovo (2ZZZ001XUS)"},
			found:    true,
		},
		{
			name:  "no match",
			code:  "VMware7,1",
			found: false,
		},
		{
			name:  "empty",
			code:  "",
			found: false,
		},
		{
			name:  "unknown sentinel",
			code:  "Unknown",
			found: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := LookupModelInfo(tc.code)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestLookupModelName(t *testing.T) {
	assert.Equal(t, `MacBook Air 15" (M3, 2024)`, LookupModelName("Mac15,13"))
	assert.Equal(t, "ThinkPad X1 Carbon Gen 11", LookupModelName("21HM0042US"))
	assert.Equal(t, "VMware7,1", LookupModelName(" VMware7,1 "))
	assert.Equal(t, UnknownModel, LookupModelName(""))
	assert.Equal(t, UnknownModel, LookupModelName("Unknown"))
}

func TestModelReleaseYear(t *testing.T) {
	testCases := []struct {
		code     string
		expected int
	}{
		{"Mac14,2", 2022},
		{"20XW00ABUS", 2021},
		{"Latitude 7320", 2021},
		{"Latitude 7440", 0},
		{`MacBook Pro 14" (M3, 2023)`, 2023},
		{"Mac99,1", 0},
		{"", 0},
		{"Unknown", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, ModelReleaseYear(tc.code))
		})
	}
}

func TestModelMSRP(t *testing.T) {
	msrp, ok := ModelMSRP("Mac14,8")
	assert.True(t, ok)
	assert.Equal(t, 6999, msrp)

	_, ok = ModelMSRP("Dell Inc. Latitude 7440")
	assert.False(t, ok)

	_, ok = ModelMSRP("")
	assert.False(t, ok)
}

func TestManufacturerFromModel(t *testing.T) {
	testCases := []struct {
		code     string
		expected string
	}{
		{"21HK003MUS", ManufacturerLenovo},
		{"83A4000BUS", ManufacturerLenovo},
		{"2ZZZ001XUS", ManufacturerLenovo},
		{"Mac15,13", ManufacturerApple},
		{"MacBookPro99,9", ManufacturerApple},
		{"iMac21,1", ManufacturerApple},
		{"Latitude 5550", ManufacturerDell},
		{"Dell Inc. OptiPlex Micro 7010", ManufacturerDell},
		{"Surface Pro 10", ManufacturerMicrosoft},
		{"Unknown", UnknownManufacturer},
		{"", UnknownManufacturer},
		{"VMware7,1", UnknownManufacturer},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, ManufacturerFromModel(tc.code))
		})
	}
}

func TestLookupIsDeterministic(t *testing.T) {
	for code := range appleModels {
		first, _ := LookupModelInfo(code)
		second, _ := LookupModelInfo(code)
		assert.Equal(t, first, second, code)
		assert.NotZero(t, first.Year, code)
		assert.True(t, first.HasMSRP(), code)
	}
}
