package examgen

import (
	"fmt"
	"strings"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/llm"
)

// Prompt is the compiled instruction for one generation request.
type Prompt struct {
	System string
	User   string
	Schema *llm.Schema
}

// Text returns the full prompt as one document.
func (p Prompt) Text() string {
	return p.System + "\n\n" + p.User
}

const systemPrompt = `QUY TẮC NỘI DUNG:
- 'mcq': Lựa chọn nhiễu (distractors) phải logic, dễ gây nhầm lẫn nếu học sinh hiểu sai bản chất.
- 'tf': Mỗi ý a, b, c, d phải khai thác một khía cạnh khác nhau của cùng một vấn đề/giả thiết.
- 'short': Tập trung vào kết quả số học hoặc biểu thức rút gọn nhất.
- 'essay': Yêu cầu trình bày lập luận.
- 'solution': Phải cực kỳ chi tiết, giải thích tại sao chọn đáp án đó hoặc các bước biến đổi cụ thể.

YÊU CẦU KỸ THUẬT:
- Sử dụng LaTeX chuẩn: $...$ cho inline, $$...$$ cho block.
- Công thức hóa học dùng $H_2O$, $SO_4^{2-}$.
- Hình học: Mô tả rõ ràng các đỉnh, góc, quan hệ song song/vuông góc.

Output JSON Array only. Không viết thêm bất kỳ lời dẫn hay giải thích nào ngoài mảng JSON.`

const vanDungGuidance = `- Với mức "Vận dụng": Hãy tạo ra các bài toán liên hệ thực tiễn (STEM), bài toán có nhiều bước suy luận hoặc bài toán yêu cầu tư duy sáng tạo (tương tự các câu lấy điểm 9, 10 trong đề thi học kì). Tránh các câu hỏi lặp lại, sáo rỗng.`

// Compile renders a config into the prompt sent to the model. Equal
// configs produce byte-identical prompts.
func Compile(cfg *exam.Config) Prompt {
	return Prompt{
		System: systemPrompt,
		User:   buildUserMessage(cfg),
		Schema: ExamSchema,
	}
}

func buildUserMessage(cfg *exam.Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bạn là một Chuyên gia khảo thí và biên soạn đề thi cấp quốc gia, am hiểu sâu sắc chương trình GDPT 2018 môn %s lớp %s.\n\n", cfg.Subject, cfg.Grade)

	fmt.Fprintf(&b, "NHIỆM VỤ: Tạo %d câu hỏi phong phú, đa dạng và có tính phân hóa cao.\n\n", cfg.TotalQuestions())

	b.WriteString("THAM CHIẾU PHONG CÁCH:\n")
	b.WriteString("- Tham khảo các dạng bài tập sáng tạo từ \"Kết nối tri thức\", \"Cánh diều\", \"Chân trời sáng tạo\".\n")
	b.WriteString("- Mô phỏng cách đặt vấn đề thực tế của các trang \"vietjack.com\", \"loigiaihay.com\".\n")
	b.WriteString("- Cấu trúc lời giải phải rõ ràng, logic, giúp học sinh nắm vững phương pháp giải (tương tự sách giáo viên).\n\n")

	b.WriteString("PHẠM VI KIẾN THỨC:\n")
	b.WriteString(buildTopics(cfg.Topics))
	b.WriteString("\n\n")

	b.WriteString("CẤU TRÚC ĐỀ:\n")
	fmt.Fprintf(&b, "- MCQ: %d câu.\n", cfg.Counts.MCQ)
	fmt.Fprintf(&b, "- Đúng/Sai (TF): %d câu.\n", cfg.Counts.TF)
	fmt.Fprintf(&b, "- Trả lời ngắn: %d câu.\n", cfg.Counts.Short)
	fmt.Fprintf(&b, "- Tự luận: %d câu.\n\n", cfg.Counts.Essay)

	b.WriteString("ĐỘ KHÓ & PHÂN HÓA:\n")
	b.WriteString(difficultyInstruction(cfg.Difficulty))
	b.WriteString("\n")
	b.WriteString(vanDungGuidance)

	return b.String()
}

// buildTopics lists every chapter with its lessons, one line per chapter.
func buildTopics(topics []exam.Topic) string {
	lines := make([]string, len(topics))
	for i, t := range topics {
		lines[i] = fmt.Sprintf("- Chương \"%s\": %s", t.ChapterName, strings.Join(t.Lessons, ", "))
	}
	return strings.Join(lines, "\n")
}

func difficultyInstruction(p exam.DifficultyPolicy) string {
	if p.Mode == exam.DifficultyRatio {
		return fmt.Sprintf("Phân bố mức độ khó theo tỷ lệ: %d%% Biết (Nhận biết), %d%% Hiểu (Thông hiểu), %d%% Vận dụng (Vận dụng & Vận dụng cao).",
			p.Biet, p.Hieu, p.VanDung())
	}
	return fmt.Sprintf("Tất cả câu hỏi phải ở mức độ: %s.", p.Level)
}
