package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/exam"
)

var curriculumCmd = &cobra.Command{
	Use:     "curriculum",
	Aliases: []string{"chapters"},
	Short:   "List chapters and lessons for a subject and grade",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectFlag, _ := cmd.Flags().GetString("subject")
		grade, _ := cmd.Flags().GetString("grade")

		subject, err := exam.ParseSubject(subjectFlag)
		if err != nil {
			return err
		}
		cat := curriculum.Default()
		out := cmd.OutOrStdout()

		if grade == "" {
			for _, g := range cat.Grades(subject) {
				fmt.Fprintf(out, "Lớp %s: %d chương\n", g, len(cat.For(subject, g)))
			}
			return nil
		}

		chapters := cat.For(subject, grade)
		if len(chapters) == 0 {
			fmt.Fprintf(out, "Chưa có dữ liệu chương trình cho %s lớp %s.\n", subject.DisplayName(), grade)
			return nil
		}

		fmt.Fprintf(out, "%s lớp %s\n", subject.DisplayName(), grade)
		for _, domain := range cat.Domains(subject, grade) {
			fmt.Fprintf(out, "\n[%s]\n", domain)
			for _, ch := range cat.InDomain(subject, grade, domain) {
				fmt.Fprintf(out, "  %-8s %s\n", ch.ID, ch.Name)
				for i, l := range ch.Lessons {
					fmt.Fprintf(out, "  %8s %d. %s\n", "", i+1, l)
				}
			}
		}
		return nil
	},
}

func init() {
	curriculumCmd.Flags().String("subject", "toan", "Subject: toan, vatli, hoahoc")
	curriculumCmd.Flags().String("grade", "", "Grade 1-12 (empty lists grades)")
}
