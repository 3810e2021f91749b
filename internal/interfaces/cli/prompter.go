// Package cli es la capa de interfaz interactiva: menús, prompts con
// revalidación y render de tablas. Cumple el mismo papel que una capa HTTP en
// un servicio: traduce la E/S del operador a llamadas de casos de uso.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops/internal/domain"
)

// ErrInputClosed la fuente de entrada se cerró (EOF) a mitad de un prompt.
// Es un error reportable, no un crash: el menú termina la sesión con orden.
var ErrInputClosed = errors.New("entrada interactiva cerrada")

// LineSource abstrae la lectura de líneas del operador. La terminal real es
// una implementación; los tests inyectan una cola finita de respuestas.
type LineSource interface {
	ReadLine() (string, error)
}

// stdinSource lee líneas de os.Stdin.
type stdinSource struct {
	r *bufio.Reader
}

// NewStdinSource construye la fuente de entrada de la terminal.
func NewStdinSource() LineSource {
	return &stdinSource{r: bufio.NewReader(os.Stdin)}
}

func (s *stdinSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimSpace(line), nil
			}
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("leer entrada: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ScriptSource fuente de entrada con respuestas predefinidas; al agotarse
// devuelve ErrInputClosed. Pensada para ejercitar los flujos sin terminal.
type ScriptSource struct {
	lines []string
	pos   int
}

// NewScriptSource construye la fuente con las líneas dadas.
func NewScriptSource(lines ...string) *ScriptSource {
	return &ScriptSource{lines: lines}
}

func (s *ScriptSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", ErrInputClosed
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// Prompter implementa el validador interactivo: emite un prompt, lee, evalúa
// el predicado y repite hasta obtener un valor válido. El lazo no tiene cota
// de iteraciones (modela a un humano corrigiendo su entrada); la cota la pone
// la fuente: un ScriptSource agotado corta con ErrInputClosed.
type Prompter struct {
	in  LineSource
	out io.Writer
}

// NewPrompter construye el prompter sobre la fuente y la salida dadas.
func NewPrompter(in LineSource, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Line emite el prompt y devuelve la línea leída, sin validar.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.in.ReadLine()
}

// NonEmpty repite hasta obtener una línea no vacía.
func (p *Prompter) NonEmpty(prompt, retry string) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(p.out, retry)
	}
}

// Int64 repite hasta obtener un entero.
func (p *Prompter) Int64(prompt, retry string) (int64, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.ParseInt(line, 10, 64)
		if convErr == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, retry)
	}
}

// Float repite hasta obtener un número real.
func (p *Prompter) Float(prompt, retry string) (float64, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		f, convErr := strconv.ParseFloat(line, 64)
		if convErr == nil {
			return f, nil
		}
		fmt.Fprintln(p.out, retry)
	}
}

// Decimal repite hasta obtener un decimal válido (precios).
func (p *Prompter) Decimal(prompt, retry string) (decimal.Decimal, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, convErr := decimal.NewFromString(line)
		if convErr == nil {
			return d, nil
		}
		fmt.Fprintln(p.out, retry)
	}
}

// Validated repite hasta que el predicado acepte la línea. Un error de
// validación de dominio re-pregunta con retry; cualquier otro error (fallo de
// almacenamiento, autorización revocada) aborta el prompt y sube al caller.
func (p *Prompter) Validated(prompt, retry string, predicate func(string) error) (string, error) {
	for {
		line, err := p.NonEmpty(prompt, retry)
		if err != nil {
			return "", err
		}
		predErr := predicate(line)
		if predErr == nil {
			return line, nil
		}
		if !retryable(predErr) {
			return "", predErr
		}
		fmt.Fprintln(p.out, retry)
	}
}

// Int64Validated como Validated pero exige formato entero antes del predicado.
func (p *Prompter) Int64Validated(prompt, retry string, predicate func(int64) error) (int64, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.ParseInt(line, 10, 64)
		if convErr != nil {
			fmt.Fprintln(p.out, retry)
			continue
		}
		predErr := predicate(n)
		if predErr == nil {
			return n, nil
		}
		if !retryable(predErr) {
			return 0, predErr
		}
		fmt.Fprintln(p.out, retry)
	}
}

// retryable distingue fallos de validación (recuperables re-preguntando) de
// fallos duros que deben abortar el flujo.
func retryable(err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrStoreOutOfRange),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate):
		return true
	}
	return false
}
