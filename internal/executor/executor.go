package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// Executor drives field execution for one schema/runtime pair. It holds no
// per-request state; a single Executor serves concurrent requests.
type Executor struct {
	runtime Runtime
	schema  *schema.Schema
}

func NewExecutor(runtime Runtime, schema *schema.Schema) *Executor {
	return &Executor{runtime: runtime, schema: schema}
}

// executionState holds the state of one request execution.
type executionState struct {
	runtime        Runtime
	schema         *schema.Schema
	document       *language.QueryDocument
	variableValues map[string]any
	context        context.Context
	asyncTaskGroup []asyncTask
	errors         language.ErrorList
	// dataNull is set when Non-Null propagation reaches the response root.
	dataNull bool
	// prefixes of response paths nullified by Non-Null propagation
	nullifiedPrefix map[string]struct{}
}

// asyncTask is a queued asynchronous field resolution.
type asyncTask struct {
	Task         AsyncResolveTask
	ResponsePath language.Path
	FieldType    *schema.TypeRef
	Fields       []*language.Field
	// Anchor is the nearest nullable ancestor slot at queue time. A Non-Null
	// failure of this field nulls the anchor; an empty anchor is the response
	// root itself.
	Anchor language.Path
}

// asyncPending marks a response-tree slot whose value arrives in a later
// batch.
type asyncPending struct{}

// ExecuteRequest executes the operation and returns exactly one of an
// immediate result or a Pending handle. The result is immediate whenever no
// asynchronous resolver participates; otherwise the depth-wise batch loop
// runs on its own goroutine behind the Pending handle.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
	rootValue any,
) (*ExecutionResult, *Pending) {
	operation := getOperation(document, operationName)
	if operation == nil {
		return ErrorResult(&language.Error{Message: "operation not found"}), nil
	}

	coercedVariableValues, err := coerceVariableValues(e.schema, operation, variableValues)
	if err != nil {
		return ErrorResult(language.WrapError(err)), nil
	}

	var rootType *schema.Type
	switch operation.Operation {
	case language.Query:
		rootType = e.schema.GetQueryType()
	case language.Mutation:
		rootType = e.schema.GetMutationType()
	case language.Subscription:
		rootType = e.schema.GetSubscriptionType()
	default:
		return ErrorResult(&language.Error{Message: fmt.Sprintf("unsupported operation type: %s", operation.Operation)}), nil
	}
	if rootType == nil {
		return ErrorResult(&language.Error{Message: fmt.Sprintf("schema is not configured for %s operations", operation.Operation)}), nil
	}

	state := &executionState{
		runtime:         e.runtime,
		schema:          e.schema,
		document:        document,
		variableValues:  coercedVariableValues,
		context:         ctx,
		errors:          language.ErrorList{},
		nullifiedPrefix: make(map[string]struct{}),
	}

	// Root selection set: sync fields expand immediately, async fields queue.
	responseRoot := executeSelectionSet(state, rootType, operation.SelectionSet, rootValue, language.Path{}, language.Path{})
	if responseRoot == nil {
		// Non-Null propagation reached the root during sync expansion.
		return &ExecutionResult{Data: nil, Errors: state.errors}, nil
	}

	if len(state.asyncTaskGroup) == 0 {
		return &ExecutionResult{Data: responseRoot, Errors: state.errors}, nil
	}

	// Asynchronous completion required: hand the depth-wise batch loop to a
	// goroutine and give the caller a cancelable handle.
	execCtx, cancel := context.WithCancel(ctx)
	state.context = execCtx
	pending := &Pending{done: make(chan *ExecutionResult, 1), cancel: cancel}
	go func() {
		defer cancel()
		for len(state.asyncTaskGroup) > 0 && !state.dataNull {
			if execCtx.Err() != nil {
				state.addError(execCtx.Err().Error(), nil)
				for _, at := range state.asyncTaskGroup {
					setValueAtPath(responseRoot, at.ResponsePath, nil)
				}
				state.asyncTaskGroup = nil
				break
			}
			filtered, results := flushAsyncTasks(state)
			for i, r := range results {
				completeAsyncField(state, filtered[i], r, responseRoot)
			}
		}
		data := any(responseRoot)
		if state.dataNull {
			data = nil
		}
		pending.done <- &ExecutionResult{Data: data, Errors: state.errors}
	}()
	return nil, pending
}

// executeSelectionSet executes a selection set without flushing async work.
// anchor is the nearest nullable slot enclosing this object; a Non-Null
// field violation nullifies the whole object by returning nil.
func executeSelectionSet(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, objectValue any, path, anchor language.Path) map[string]any {
	groupedFields := collectFields(state, objectType, selectionSet)
	resultMap := make(map[string]any)

	for _, collected := range groupedFields.orderedFields() {
		responseName := collected.ResponseName
		fields := collected.Fields
		fieldPath := appendPath(path, language.PathName(responseName))

		fieldResult := executeFieldGroup(state, objectType, objectValue, fields, fieldPath, anchor)

		if fields[0].Name == "__typename" {
			resultMap[responseName] = fieldResult
			continue
		}

		fieldDef := getFieldDefinition(objectType, fields[0].Name)
		if fieldDef == nil {
			// Unknown field: error already recorded, slot omitted.
			continue
		}

		if schema.IsNonNull(fieldDef.Type) && isNullish(fieldResult) {
			// Drop async tasks already queued under the discarded object.
			state.markNullifiedPrefix(path)
			return nil
		}

		if isNullish(fieldResult) {
			resultMap[responseName] = nil
		} else {
			resultMap[responseName] = fieldResult
		}
	}

	return resultMap
}

func executeFieldGroup(state *executionState, objectType *schema.Type, objectValue any, fields []*language.Field, path, anchor language.Path) any {
	field := fields[0]
	fieldName := field.Name

	if fieldName == "__typename" {
		return objectType.Name
	}

	fieldDef := getFieldDefinition(objectType, fieldName)
	if fieldDef == nil {
		state.addError(fmt.Sprintf("Cannot query field '%s' on type '%s'", fieldName, objectType.Name), path)
		return nil
	}

	argumentValues := coerceArgumentValues(fieldDef, field.Arguments, state.variableValues, state, path)

	if !state.runtime.IsAsyncField(objectType.Name, fieldName) {
		resolvedValue := resolveSyncField(state, objectType.Name, fieldName, objectValue, argumentValues, path)
		return completeValue(state, fieldDef.Type, fields, resolvedValue, path, anchor)
	}

	state.asyncTaskGroup = append(state.asyncTaskGroup, asyncTask{
		Task: AsyncResolveTask{
			ObjectType: objectType.Name,
			Field:      fieldName,
			Source:     objectValue,
			Args:       argumentValues,
		},
		ResponsePath: path,
		FieldType:    fieldDef.Type,
		Fields:       fields,
		Anchor:       anchor,
	})
	return asyncPending{}
}

// flushAsyncTasks runs one depth's batch, dropping tasks under nullified
// prefixes first.
func flushAsyncTasks(state *executionState) ([]asyncTask, []AsyncResolveResult) {
	filtered := make([]asyncTask, 0, len(state.asyncTaskGroup))
	for _, at := range state.asyncTaskGroup {
		if state.hasNullifiedPrefix(at.ResponsePath) {
			continue
		}
		filtered = append(filtered, at)
	}

	tasks := make([]AsyncResolveTask, len(filtered))
	for i, at := range filtered {
		tasks[i] = at.Task
	}

	state.asyncTaskGroup = nil
	if len(tasks) == 0 {
		return nil, nil
	}

	results := state.runtime.BatchResolveAsync(state.context, tasks)
	return filtered, results
}

// completeAsyncField completes one async result, with Non-Null propagation
// and pruning of descendants under nullified paths.
func completeAsyncField(state *executionState, at asyncTask, res AsyncResolveResult, responseRoot map[string]any) {
	if state.dataNull || state.hasNullifiedPrefix(at.ResponsePath) {
		return
	}
	path := at.ResponsePath

	if res.Error != nil {
		state.addError(res.Error.Error(), path)
		if schema.IsNonNull(at.FieldType) {
			state.nullifyAnchor(at.Anchor, responseRoot)
			return
		}
		setValueAtPath(responseRoot, path, nil)
		state.markNullifiedPrefix(path)
		return
	}

	completed := completeValue(state, at.FieldType, at.Fields, res.Value, path, at.Anchor)

	if schema.IsNonNull(at.FieldType) && isNullish(completed) {
		state.nullifyAnchor(at.Anchor, responseRoot)
		return
	}

	if isNullish(completed) {
		setValueAtPath(responseRoot, path, nil)
		state.markNullifiedPrefix(path)
	} else {
		setValueAtPath(responseRoot, path, completed)
	}
}

// completeValue completes a resolved value against its declared type. anchor
// is the nearest nullable slot enclosing this one, used by queued async
// descendants for Non-Null propagation.
func completeValue(state *executionState, fieldType *schema.TypeRef, fields []*language.Field, result any, path, anchor language.Path) any {
	if _, pending := result.(asyncPending); pending {
		return result
	}
	if schema.IsNonNull(fieldType) {
		if isNullish(result) {
			if !state.hasErrorAtPath(path) {
				state.addError(fmt.Sprintf("Cannot return null for non-nullable field %s", path.String()), path)
			}
			return nil
		}
		// A Non-Null slot cannot absorb nulls; keep the enclosing anchor.
		completed := completeBareValue(state, schema.Unwrap(fieldType), fields, result, path, anchor)
		if isNullish(completed) {
			return nil
		}
		return completed
	}

	if isNullish(result) {
		return nil
	}

	// This slot is nullable, so it absorbs Non-Null violations below it.
	return completeBareValue(state, fieldType, fields, result, path, path)
}

// completeBareValue completes a non-null-checked value. anchor is the slot
// that absorbs Non-Null violations arising below this value.
func completeBareValue(state *executionState, fieldType *schema.TypeRef, fields []*language.Field, result any, path, anchor language.Path) any {
	if schema.IsList(fieldType) {
		return completeListValue(state, fieldType, fields, result, path, anchor)
	}

	namedType := schema.GetNamedType(fieldType)
	typeDef := state.schema.Types[namedType]
	if typeDef == nil {
		state.addError(fmt.Sprintf("Unknown type: %s", namedType), path)
		return nil
	}

	switch typeDef.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		serialized, err := state.runtime.SerializeLeafValue(state.context, namedType, result)
		if err != nil {
			state.addError(err.Error(), path)
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		return completeObjectValue(state, typeDef, fields, result, path, anchor)
	case schema.TypeKindInterface, schema.TypeKindUnion:
		return completeAbstractValue(state, namedType, fields, result, path, anchor)
	default:
		state.addError(fmt.Sprintf("Cannot complete value of unexpected type: %s", typeDef.Kind), path)
		return nil
	}
}

func completeListValue(state *executionState, listType *schema.TypeRef, fields []*language.Field, result any, path, anchor language.Path) any {
	var items []any
	if direct, ok := result.([]any); ok {
		items = direct
	} else {
		rv := reflect.ValueOf(result)
		if rv.Kind() != reflect.Slice {
			state.addError(fmt.Sprintf("Expected list value, got %T", result), path)
			return nil
		}
		items = make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
	}

	inner := schema.Unwrap(listType)
	completed := make([]any, len(items))
	for i, item := range items {
		p := appendPath(path, language.PathIndex(i))
		v := completeValue(state, inner, fields, item, p, anchor)
		if schema.IsNonNull(inner) && isNullish(v) {
			if _, pending := v.(asyncPending); !pending {
				// Null propagates to the list field itself.
				state.markNullifiedPrefix(path)
				return nil
			}
		}
		completed[i] = v
	}
	return completed
}

func completeObjectValue(state *executionState, objectType *schema.Type, fields []*language.Field, result any, path, anchor language.Path) any {
	sub := mergeSelectionSets(fields)
	return executeSelectionSet(state, objectType, sub, result, path, anchor)
}

func completeAbstractValue(state *executionState, abstractTypeName string, fields []*language.Field, result any, path, anchor language.Path) any {
	typeName, err := state.runtime.ResolveType(state.context, abstractTypeName, result)
	if err != nil {
		state.addError(err.Error(), path)
		return nil
	}
	objectType := state.schema.Types[typeName]
	if objectType == nil || objectType.Kind != schema.TypeKindObject {
		state.addError(fmt.Sprintf("Abstract type %s must resolve to an Object type at runtime. Got: %s", abstractTypeName, typeName), path)
		return nil
	}
	return completeObjectValue(state, objectType, fields, result, path, anchor)
}

func resolveSyncField(state *executionState, objectType, fieldName string, source any, args map[string]any, path language.Path) any {
	value, err := state.runtime.ResolveSync(state.context, objectType, fieldName, source, args)
	if err != nil {
		state.addError(err.Error(), path)
		return nil
	}
	return value
}

func appendPath(path language.Path, elem language.PathElement) language.Path {
	newPath := make(language.Path, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = elem
	return newPath
}

func (state *executionState) addError(message string, path language.Path) {
	state.errors = append(state.errors, &language.Error{Message: message, Path: path})
}

// hasErrorAtPath reports whether an error with the given path already exists.
func (state *executionState) hasErrorAtPath(path language.Path) bool {
	for _, err := range state.errors {
		if reflect.DeepEqual(err.Path, path) {
			return true
		}
	}
	return false
}

// nullifyAnchor writes null at the nearest nullable ancestor slot and prunes
// everything beneath it. An empty anchor nulls the response root.
func (state *executionState) nullifyAnchor(anchor language.Path, responseRoot map[string]any) {
	if len(anchor) == 0 {
		state.dataNull = true
		return
	}
	setValueAtPath(responseRoot, anchor, nil)
	state.markNullifiedPrefix(anchor)
}

func (state *executionState) markNullifiedPrefix(p language.Path) {
	if key := p.String(); key != "" {
		state.nullifiedPrefix[key] = struct{}{}
	}
}

func (state *executionState) hasNullifiedPrefix(p language.Path) bool {
	if len(state.nullifiedPrefix) == 0 {
		return false
	}
	for i := range p {
		if _, ok := state.nullifiedPrefix[p[:i+1].String()]; ok {
			return true
		}
	}
	return false
}

// setValueAtPath writes value into the response tree at path, materializing
// intermediate containers as needed.
func setValueAtPath(responseRoot map[string]any, path language.Path, value any) {
	if len(path) == 0 {
		return
	}
	current := any(responseRoot)
	for _, elem := range path[:len(path)-1] {
		switch e := elem.(type) {
		case language.PathName:
			m, ok := current.(map[string]any)
			if !ok {
				return
			}
			next, exists := m[string(e)]
			if !exists || next == nil {
				next = make(map[string]any)
				m[string(e)] = next
			}
			current = next
		case language.PathIndex:
			slice, ok := current.([]any)
			if !ok || int(e) >= len(slice) {
				return
			}
			if slice[e] == nil {
				slice[e] = make(map[string]any)
			}
			current = slice[e]
		}
	}
	switch e := path[len(path)-1].(type) {
	case language.PathName:
		if m, ok := current.(map[string]any); ok {
			m[string(e)] = value
		}
	case language.PathIndex:
		if slice, ok := current.([]any); ok && int(e) < len(slice) {
			slice[e] = value
		}
	}
}

// getOperation selects the requested operation, or the only one when the
// request does not name it.
func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		return document.Operations[0]
	}
	return document.Operations.ForName(operationName)
}

// mergeSelectionSets merges the sub-selections of a field group.
func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

// isNullish reports true for nil interfaces and typed nils.
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
