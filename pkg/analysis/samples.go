package analysis

import (
	"errors"
	"fmt"
	"sort"
)

// Built-in sample set names.
const (
	SetEfficiency = "efficiency"
	SetVectors    = "vectors"
	SetProgram    = "program"
)

// ErrUnknownSampleSet is returned by Samples.
var ErrUnknownSampleSet = errors.New("unknown sample set")

var sampleSets = map[string][]Sample{
	SetEfficiency: {
		{
			Name:        "Function Definition",
			Traditional: "函數定義⟨計算總和,數字列表⟩數字列表.reduce((累加,當前)=>累加+當前,0)⟨/函數定義⟩",
			Symbolic:    "λ⟨計算總和,數字列表⟩數字列表.∘((累加,當前)=>累加+當前,⊗∅)⟨/λ⟩",
		},
		{
			Name:        "State Management",
			Traditional: "狀態管理⟨用戶:物件類型⟨名稱:文字類型⟨⟩,年齡:數字類型⟨25⟩⟩,活躍:布林類型⟨真⟩⟩",
			Symbolic:    "Σ⟨用戶:𝕆⟨名稱:𝕊⟨⟩,年齡:ℝ⟨⊗βε⟩⟩,活躍:𝔹⟨⊗⊤⟩⟩",
		},
		{
			Name:        "Component with Styles",
			Traditional: "組件建立⟨按鈕⟩樣式配置{顏色屬性:藍色;內邊距:8像素;邊框屬性:1像素 實心 灰色;過渡效果:全部 0.2秒 緩動}⟨/組件建立⟩",
			Symbolic:    "∆⟨按鈕⟩Φ{ρ:藍色;φ:⊗θ像素;β:⊗α像素 ⬛ 灰色;τ:全部 ⊗∅.⊗β秒 緩動}⟨/∆⟩",
		},
		{
			Name:        "Control Flow",
			Traditional: "條件判斷⟨年齡 >= 18⟩流程控制⟨成年人⟩否則⟨未成年⟩",
			Symbolic:    "∇⟨年齡 >= ⊗αθ⟩→⟨成年人⟩¬⟨未成年⟩",
		},
		{
			Name:        "Array Operations",
			Traditional: "陣列類型⟨1,2,3,4,5⟩.映射(數字=>數字*2).過濾(數字=>數字>5)",
			Symbolic:    "𝔸⟨⊗α,⊗β,⊗γ,⊗δ,⊗ε⟩.∘(數字=>數字*⊗β).∇(數字=>數字>⊗ε)",
		},
	},
	SetVectors: {
		{Name: "0", Traditional: "0", Symbolic: "⊗∅"},
		{Name: "1", Traditional: "1", Symbolic: "⊗α"},
		{Name: "5", Traditional: "5", Symbolic: "⊗ε"},
		{Name: "10", Traditional: "10", Symbolic: "⊗χ"},
		{Name: "11", Traditional: "11", Symbolic: "⊗αα"},
		{Name: "25", Traditional: "25", Symbolic: "⊗βε"},
		{Name: "100", Traditional: "100", Symbolic: "⊗●"},
		{Name: "0.5", Traditional: "0.5", Symbolic: "⊗½"},
		{Name: "0.25", Traditional: "0.25", Symbolic: "⊗¼"},
		{Name: "3.14159", Traditional: "3.14159", Symbolic: "⊗π"},
		{Name: "2.71828", Traditional: "2.71828", Symbolic: "⊗e"},
	},
	SetProgram: {
		{
			Name: "Counting loop",
			Traditional: "count = 0;\n" +
				"for (i = 1; i <= 10; i++) {\n" +
				"    if (i === 5) break;\n" +
				"    count = count + 1;\n" +
				"}\n" +
				"result = count * 3.14159;",
			Symbolic: "count = ⊗∅;\n" +
				"for (i = ⊗α; i <= ⊗χ; i++) {\n" +
				"    ∇ (i ≡ ⊗ε) break;\n" +
				"    count = count + ⊗α;\n" +
				"}\n" +
				"result = count * ⊗π;",
		},
	},
}

// SampleSetNames lists the built-in sample sets, sorted.
func SampleSetNames() []string {
	names := make([]string, 0, len(sampleSets))
	for name := range sampleSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Samples returns a copy of the named sample set.
func Samples(name string) ([]Sample, error) {
	set, ok := sampleSets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSampleSet, name)
	}
	return append([]Sample(nil), set...), nil
}
