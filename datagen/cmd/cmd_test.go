package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/datagen/datagen/cmd"
)

func run(args ...string) (string, error) {
	out := bytes.NewBuffer(nil)

	root := cmd.NewRootCommand()
	root.SetOut(out)
	root.SetErr(bytes.NewBuffer(nil))
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func lines(s string) []string {
	return strings.Fields(s)
}

var _ = Describe("datagen", func() {
	It("should list the distributions", func() {
		out, err := run("sequences")

		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(ContainElements(
			"bitreverse", "random", "shuffle", "step", "wedge", "predefined"))
	})

	It("should emit a unique step sequence until depletion", func() {
		out, err := run("numbers", "-d", "step", "--min", "1", "--max", "5",
			"--unique", "-n", "0")

		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(Equal([]string{"1", "2", "3", "4", "5"}))
	})

	It("should pass sequence parameters", func() {
		out, err := run("numbers", "-d", "shuffle", "--increment", "2",
			"--min", "0", "--max", "3", "--unique", "-n", "0")

		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(Equal([]string{"0", "2", "1", "3"}))
	})

	It("should emit predefined values", func() {
		out, err := run("numbers", "-d", "predefined", "--values", "1.5, 3",
			"--float", "-n", "0")

		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(Equal([]string{"1.5", "3"}))
	})

	It("should write json", func() {
		out, err := run("numbers", "-d", "bitreverse", "--min", "0",
			"--max", "7", "--unique", "-n", "0", "-f", "json")

		Expect(err).ToNot(HaveOccurred())

		var values []int64
		Expect(json.Unmarshal([]byte(out), &values)).To(Succeed())
		Expect(values).To(Equal([]int64{0, 4, 2, 6, 1, 5, 3, 7}))
	})

	It("should write yaml", func() {
		out, err := run("numbers", "-d", "wedge", "--min", "1", "--max", "5",
			"--unique", "-n", "0", "-f", "yaml")

		Expect(err).ToNot(HaveOccurred())

		var values []int64
		Expect(yaml.Unmarshal([]byte(out), &values)).To(Succeed())
		Expect(values).To(HaveLen(5))
		Expect(values).To(ConsistOf(int64(1), int64(2), int64(3), int64(4), int64(5)))
	})

	It("should replay with the same seed", func() {
		first, err := run("numbers", "--seed", "7", "--max", "1000")
		Expect(err).ToNot(HaveOccurred())

		second, err := run("numbers", "--seed", "7", "--max", "1000")
		Expect(err).ToNot(HaveOccurred())

		Expect(lines(first)).To(HaveLen(10))
		Expect(second).To(Equal(first))
	})

	It("should drive a generator with several workers", func() {
		out, err := run("numbers", "--workers", "4", "--min", "0", "--max",
			"99", "--unique", "-n", "0", "-f", "json")

		Expect(err).ToNot(HaveOccurred())

		var values []int
		Expect(json.Unmarshal([]byte(out), &values)).To(Succeed())
		slices.Sort(values)

		expected := make([]int, 100)
		for i := range expected {
			expected[i] = i
		}

		Expect(values).To(Equal(expected))
	})

	It("should sample weighted numbers", func() {
		out, err := run("weighted", "0^0,1^3,2^2,3^1", "-n", "50", "--seed", "3")

		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(HaveLen(50))

		for _, v := range lines(out) {
			Expect(v).To(BeElementOf("1", "2", "3"))
		}
	})

	It("should emit uuids", func() {
		out, err := run("uuid", "-n", "3")

		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(HaveLen(3))
		Expect(lines(out)[0]).To(HaveLen(36))
	})

	It("should keep local ids across runs", func() {
		store := filepath.Join(GinkgoT().TempDir(), "ids.db")

		first, err := run("local", "--store", store, "-n", "3")
		Expect(err).ToNot(HaveOccurred())
		Expect(lines(first)).To(Equal([]string{"1", "2", "3"}))

		second, err := run("local", "--store", store, "-n", "3")
		Expect(err).ToNot(HaveOccurred())
		Expect(lines(second)).To(Equal([]string{"4", "5", "6"}))
	})

	It("should record the products", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run")

		_, err := run("numbers", "-n", "5", "--record", "--record-file", path)

		Expect(err).ToNot(HaveOccurred())
		Expect(path + ".sqlite3").To(BeAnExistingFile())
	})

	It("should read a recording back", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run")

		emitted, err := run("numbers", "-d", "step", "--min", "1", "--max", "3",
			"--unique", "-n", "0", "--record", "--record-file", path)
		Expect(err).ToNot(HaveOccurred())

		out, err := run("recording", path+".sqlite3", "-f", "json")
		Expect(err).ToNot(HaveOccurred())

		var summaries []map[string]any
		Expect(json.Unmarshal([]byte(out), &summaries)).To(Succeed())
		Expect(summaries).To(ConsistOf(
			HaveKeyWithValue("generator", "Numbers")))
		Expect(summaries[0]).To(HaveKeyWithValue("products", BeNumerically("==", 3)))
		Expect(summaries[0]).To(HaveKeyWithValue("depleted", true))

		out, err = run("recording", path+".sqlite3",
			"--generator", "Numbers", "--offset", "1", "-n", "0")
		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(Equal(lines(emitted)[1:]))

		_, err = run("recording", filepath.Join(GinkgoT().TempDir(), "none"))
		Expect(err).To(HaveOccurred())
	})

	It("should read settings from the environment", func() {
		os.Setenv("DATAGEN_COUNT", "2")
		defer os.Unsetenv("DATAGEN_COUNT")

		out, err := run("numbers")

		Expect(err).ToNot(HaveOccurred())
		Expect(lines(out)).To(HaveLen(2))
	})

	It("should read settings from a config file", func() {
		file := filepath.Join(GinkgoT().TempDir(), "datagen.yaml")
		Expect(os.WriteFile(file, []byte("count: 4\nformat: json\n"), 0o600)).
			To(Succeed())

		out, err := run("numbers", "--config", file)

		Expect(err).ToNot(HaveOccurred())

		var values []int64
		Expect(json.Unmarshal([]byte(out), &values)).To(Succeed())
		Expect(values).To(HaveLen(4))
	})

	It("should reject bad settings", func() {
		_, err := run("numbers", "-f", "xml")
		Expect(err).To(MatchError(ContainSubstring("unknown format")))

		_, err = run("numbers", "--workers", "0")
		Expect(err).To(MatchError(ContainSubstring("workers")))

		_, err = run("numbers", "--min", "5", "--max", "1")
		Expect(err).To(MatchError(ContainSubstring("max")))

		_, err = run("numbers", "-d", "nosuch")
		Expect(err).To(MatchError(ContainSubstring("distribution")))

		_, err = run("local", "-n", "0")
		Expect(err).To(MatchError(ContainSubstring("never deplete")))
	})
})
